package sim

import "fmt"

// ItemSpec is one equipped item with its enchant and socketed gems
type ItemSpec struct {
	ID      int32   `json:"id" yaml:"id"`
	Enchant int32   `json:"enchant,omitempty" yaml:"enchant"`
	Gems    []int32 `json:"gems,omitempty" yaml:"gems"`
}

// EquipmentSpec lists the items of a gear set in slot order
type EquipmentSpec struct {
	Items []ItemSpec `json:"items" yaml:"items"`
}

// Clone returns a deep copy
func (e EquipmentSpec) Clone() EquipmentSpec {
	if e.Items == nil {
		return EquipmentSpec{}
	}
	items := make([]ItemSpec, len(e.Items))
	for i, item := range e.Items {
		items[i] = item
		if item.Gems != nil {
			items[i].Gems = append([]int32(nil), item.Gems...)
		}
	}
	return EquipmentSpec{Items: items}
}

// Enchant describes an enchant for display. EffectID keys the reference
// description table, Name is the fallback label.
type Enchant struct {
	EffectID int32
	Name     string
}

// ActionID references a spell or item icon
type ActionID struct {
	SpellID int32 `json:"spell_id,omitempty"`
	ItemID  int32 `json:"item_id,omitempty"`
}

// SpellAction returns an ActionID for a spell
func SpellAction(spellID int32) *ActionID {
	return &ActionID{SpellID: spellID}
}

// ItemAction returns an ActionID for an item
func ItemAction(itemID int32) *ActionID {
	return &ActionID{ItemID: itemID}
}

// String returns "spell-<id>" or "item-<id>"
func (a ActionID) String() string {
	if a.SpellID != 0 {
		return fmt.Sprintf("spell-%d", a.SpellID)
	}
	return fmt.Sprintf("item-%d", a.ItemID)
}
