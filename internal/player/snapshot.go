package player

import (
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// Snapshot is an immutable copy of a player's build. It is what gets
// exported, stored and shared.
type Snapshot struct {
	Name          string            `json:"name,omitempty"`
	Spec          sim.Spec          `json:"spec"`
	Class         sim.Class         `json:"class"`
	Race          sim.Race          `json:"race,omitempty"`
	Rotation      map[string]any    `json:"rotation"`
	Options       map[string]any    `json:"options"`
	Talents       map[string]any    `json:"talents"`
	TalentsString string            `json:"talents_string,omitempty"`
	Gear          sim.EquipmentSpec `json:"gear"`
	EPWeights     *sim.Stats        `json:"ep_weights,omitempty"`
}

// Snapshot captures the current build
func (p *Player) Snapshot() *Snapshot {
	return &Snapshot{
		Name:          p.name,
		Spec:          p.spec,
		Class:         p.class,
		Race:          p.race,
		Rotation:      p.records[RecordRotation].Values(),
		Options:       p.records[RecordOptions].Values(),
		Talents:       p.records[RecordTalents].Values(),
		TalentsString: p.talentsString,
		Gear:          p.gear.Clone(),
		EPWeights:     p.EPWeights(),
	}
}

// Record returns the values of one record kind
func (s *Snapshot) Record(kind RecordKind) map[string]any {
	switch kind {
	case RecordRotation:
		return s.Rotation
	case RecordOptions:
		return s.Options
	case RecordTalents:
		return s.Talents
	default:
		return nil
	}
}

// Normalize coerces decoded record values to their canonical types and fills
// fields missing from older snapshots with their defaults. Unknown fields
// are rejected.
func (s *Snapshot) Normalize(schemas Schemas) error {
	if err := schemas.Validate(); err != nil {
		return err
	}

	normalized := make(map[RecordKind]map[string]any, 3)
	for _, kind := range RecordKinds() {
		r := settings.NewRecord(schemas.Schema(kind))
		if err := r.Load(s.Record(kind)); err != nil {
			return errors.Wrapf(err, "invalid %s in snapshot", kind)
		}
		normalized[kind] = r.Values()
	}

	s.Rotation = normalized[RecordRotation]
	s.Options = normalized[RecordOptions]
	s.Talents = normalized[RecordTalents]
	return nil
}

// ApplySnapshot replaces the whole build as one change. The snapshot must be
// for the same spec. Nothing changes when any record fails to load.
func (p *Player) ApplySnapshot(eventID events.EventID, snap *Snapshot) error {
	if snap == nil {
		return errors.InvalidArgument("snapshot is required")
	}
	if snap.Spec != p.spec {
		return errors.InvalidArgumentf("snapshot is for %s, player is %s", snap.Spec, p.spec)
	}
	if snap.Race != sim.RaceUnknown && !snap.Race.Valid() {
		return errors.InvalidArgumentf("unknown race %q", snap.Race)
	}

	loaded := make(map[RecordKind]*settings.Record, len(p.records))
	for _, kind := range RecordKinds() {
		r := settings.NewRecord(p.schemas.Schema(kind))
		if err := r.Load(snap.Record(kind)); err != nil {
			return errors.Wrapf(err, "invalid %s in snapshot", kind)
		}
		loaded[kind] = r
	}

	p.Batch(func() {
		for _, kind := range RecordKinds() {
			// validated against the same schema above
			_ = p.records[kind].Load(loaded[kind].Values())
			p.RecordChange(kind).Emit(eventID, p)
		}
		p.SetName(eventID, snap.Name)
		_ = p.SetRace(eventID, snap.Race)
		p.SetTalentsString(eventID, snap.TalentsString)
		p.SetGear(eventID, snap.Gear)
		p.SetEPWeights(eventID, snap.EPWeights)
		p.change.Emit(eventID, p)
	})
	return nil
}

// FromSnapshot creates a player holding the snapshot's build
func FromSnapshot(snap *Snapshot, schemas Schemas) (*Player, error) {
	if snap == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}
	p, err := New(&Config{
		Name:    snap.Name,
		Spec:    snap.Spec,
		Class:   snap.Class,
		Race:    snap.Race,
		Schemas: schemas,
	})
	if err != nil {
		return nil, err
	}
	if err := p.ApplySnapshot(events.NextEventID(), snap); err != nil {
		return nil, err
	}
	return p, nil
}
