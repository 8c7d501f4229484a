package sim

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/simui-api/internal/errors"
)

// Stat indexes one character stat. The order matches the simulator's stat
// enum and is the order exporters list weights in.
type Stat int

// Stat constants
const (
	StatStrength Stat = iota
	StatAgility
	StatStamina
	StatIntellect
	StatSpirit
	StatSpellPower
	StatMP5
	StatSpellHit
	StatSpellCrit
	StatSpellHaste
	StatSpellPenetration
	StatAttackPower
	StatMeleeHit
	StatMeleeCrit
	StatMeleeHaste
	StatArmorPenetration
	StatExpertise
	StatMana
	StatEnergy
	StatRage
	StatArmor
	StatRangedAttackPower
	StatDefense
	StatBlock
	StatBlockValue
	StatDodge
	StatParry
	StatResilience
	StatHealth
	StatArcaneResistance
	StatFireResistance
	StatFrostResistance
	StatNatureResistance
	StatShadowResistance

	// NumStats is the number of stats, not a stat itself
	NumStats
)

var statKeys = [NumStats]string{
	StatStrength:          "STAT_STRENGTH",
	StatAgility:           "STAT_AGILITY",
	StatStamina:           "STAT_STAMINA",
	StatIntellect:         "STAT_INTELLECT",
	StatSpirit:            "STAT_SPIRIT",
	StatSpellPower:        "STAT_SPELL_POWER",
	StatMP5:               "STAT_MP5",
	StatSpellHit:          "STAT_SPELL_HIT",
	StatSpellCrit:         "STAT_SPELL_CRIT",
	StatSpellHaste:        "STAT_SPELL_HASTE",
	StatSpellPenetration:  "STAT_SPELL_PENETRATION",
	StatAttackPower:       "STAT_ATTACK_POWER",
	StatMeleeHit:          "STAT_MELEE_HIT",
	StatMeleeCrit:         "STAT_MELEE_CRIT",
	StatMeleeHaste:        "STAT_MELEE_HASTE",
	StatArmorPenetration:  "STAT_ARMOR_PENETRATION",
	StatExpertise:         "STAT_EXPERTISE",
	StatMana:              "STAT_MANA",
	StatEnergy:            "STAT_ENERGY",
	StatRage:              "STAT_RAGE",
	StatArmor:             "STAT_ARMOR",
	StatRangedAttackPower: "STAT_RANGED_ATTACK_POWER",
	StatDefense:           "STAT_DEFENSE",
	StatBlock:             "STAT_BLOCK",
	StatBlockValue:        "STAT_BLOCK_VALUE",
	StatDodge:             "STAT_DODGE",
	StatParry:             "STAT_PARRY",
	StatResilience:        "STAT_RESILIENCE",
	StatHealth:            "STAT_HEALTH",
	StatArcaneResistance:  "STAT_ARCANE_RESISTANCE",
	StatFireResistance:    "STAT_FIRE_RESISTANCE",
	StatFrostResistance:   "STAT_FROST_RESISTANCE",
	StatNatureResistance:  "STAT_NATURE_RESISTANCE",
	StatShadowResistance:  "STAT_SHADOW_RESISTANCE",
}

// eightyupgrades.com import parameter names
var eightyUpgradesNames = [NumStats]string{
	StatStrength:          "strength",
	StatAgility:           "agility",
	StatStamina:           "stamina",
	StatIntellect:         "intellect",
	StatSpirit:            "spirit",
	StatSpellPower:        "spellDamage",
	StatMP5:               "mp5",
	StatSpellHit:          "spellHitRating",
	StatSpellCrit:         "spellCritRating",
	StatSpellHaste:        "spellHasteRating",
	StatSpellPenetration:  "spellPen",
	StatAttackPower:       "attackPower",
	StatMeleeHit:          "hitRating",
	StatMeleeCrit:         "critRating",
	StatMeleeHaste:        "hasteRating",
	StatArmorPenetration:  "armorPen",
	StatExpertise:         "expertiseRating",
	StatMana:              "mana",
	StatEnergy:            "energy",
	StatRage:              "rage",
	StatArmor:             "armor",
	StatRangedAttackPower: "rangedAttackPower",
	StatDefense:           "defenseRating",
	StatBlock:             "blockRating",
	StatBlockValue:        "blockValue",
	StatDodge:             "dodgeRating",
	StatParry:             "parryRating",
	StatResilience:        "resilienceRating",
	StatHealth:            "health",
	StatArcaneResistance:  "arcaneResistance",
	StatFireResistance:    "fireResistance",
	StatFrostResistance:   "frostResistance",
	StatNatureResistance:  "natureResistance",
	StatShadowResistance:  "shadowResistance",
}

// Pawn addon stat names
var pawnNames = [NumStats]string{
	StatStrength:          "Strength",
	StatAgility:           "Agility",
	StatStamina:           "Stamina",
	StatIntellect:         "Intellect",
	StatSpirit:            "Spirit",
	StatSpellPower:        "SpellDamage",
	StatMP5:               "Mp5",
	StatSpellHit:          "SpellHitRating",
	StatSpellCrit:         "SpellCritRating",
	StatSpellHaste:        "SpellHasteRating",
	StatSpellPenetration:  "SpellPen",
	StatAttackPower:       "Ap",
	StatMeleeHit:          "HitRating",
	StatMeleeCrit:         "CritRating",
	StatMeleeHaste:        "HasteRating",
	StatArmorPenetration:  "ArmorPenetration",
	StatExpertise:         "ExpertiseRating",
	StatMana:              "Mana",
	StatEnergy:            "Energy",
	StatRage:              "Rage",
	StatArmor:             "Armor",
	StatRangedAttackPower: "Rap",
	StatDefense:           "DefenseRating",
	StatBlock:             "BlockRating",
	StatBlockValue:        "BlockValue",
	StatDodge:             "DodgeRating",
	StatParry:             "ParryRating",
	StatResilience:        "ResilienceRating",
	StatHealth:            "Health",
	StatArcaneResistance:  "ArcaneResistance",
	StatFireResistance:    "FireResistance",
	StatFrostResistance:   "FrostResistance",
	StatNatureResistance:  "NatureResistance",
	StatShadowResistance:  "ShadowResistance",
}

// EightyUpgradesName is the eightyupgrades.com EP import parameter of the stat
func (s Stat) EightyUpgradesName() string {
	if s < 0 || s >= NumStats {
		return ""
	}
	return eightyUpgradesNames[s]
}

// PawnName is the stat name used in Pawn scale strings
func (s Stat) PawnName() string {
	if s < 0 || s >= NumStats {
		return ""
	}
	return pawnNames[s]
}

// String returns the stat key, e.g. "STAT_SPELL_POWER"
func (s Stat) String() string {
	if s < 0 || s >= NumStats {
		return fmt.Sprintf("STAT_%d", int(s))
	}
	return statKeys[s]
}

// ParseStat is the inverse of Stat.String
func ParseStat(key string) (Stat, bool) {
	for i, k := range statKeys {
		if k == key {
			return Stat(i), true
		}
	}
	return 0, false
}

// AllStats returns every stat in enum order
func AllStats() []Stat {
	out := make([]Stat, 0, NumStats)
	for s := Stat(0); s < NumStats; s++ {
		out = append(out, s)
	}
	return out
}

// Stats holds one value per stat, e.g. EP weights
type Stats [NumStats]float64

// Get returns the value of one stat
func (s *Stats) Get(stat Stat) float64 {
	return s[stat]
}

// With returns a copy with one stat changed
func (s Stats) With(stat Stat, value float64) Stats {
	s[stat] = value
	return s
}

// MarshalJSON writes the non-zero stats as an object keyed by stat key
func (s Stats) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64)
	for i, v := range s {
		if v != 0 {
			out[statKeys[i]] = v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the object written by MarshalJSON
func (s *Stats) UnmarshalJSON(data []byte) error {
	var in map[string]float64
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid stats")
	}

	var out Stats
	for key, v := range in {
		stat, ok := ParseStat(key)
		if !ok {
			return errors.InvalidArgumentf("unknown stat %q", key)
		}
		out[stat] = v
	}
	*s = out
	return nil
}
