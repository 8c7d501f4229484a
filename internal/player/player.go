// Package player implements the player entity: the single owner of a build's
// configuration records. Every mutation goes through the player so that it
// can be announced on the matching change event.
package player

import (
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// RecordKind names one of the configuration records a player owns
type RecordKind string

// Record kinds
const (
	RecordRotation RecordKind = "rotation"
	RecordOptions  RecordKind = "options"
	RecordTalents  RecordKind = "talents"
)

// RecordKinds lists every record kind
func RecordKinds() []RecordKind {
	return []RecordKind{RecordRotation, RecordOptions, RecordTalents}
}

// ParseRecordKind validates a record kind read from a request
func ParseRecordKind(s string) (RecordKind, error) {
	switch RecordKind(s) {
	case RecordRotation, RecordOptions, RecordTalents:
		return RecordKind(s), nil
	default:
		return "", errors.InvalidArgumentf("unknown record %q", s)
	}
}

// Schemas are the record schemas of one spec
type Schemas struct {
	Rotation *settings.Schema
	Options  *settings.Schema
	Talents  *settings.Schema
}

// Validate ensures all schemas are present
func (s Schemas) Validate() error {
	vb := errors.NewValidationBuilder()
	if s.Rotation == nil {
		vb.RequiredField("Rotation")
	}
	if s.Options == nil {
		vb.RequiredField("Options")
	}
	if s.Talents == nil {
		vb.RequiredField("Talents")
	}
	return vb.Build()
}

// Schema returns the schema of one record kind
func (s Schemas) Schema(kind RecordKind) *settings.Schema {
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

// Config holds what a player is created from
type Config struct {
	Name    string
	Spec    sim.Spec
	Class   sim.Class
	Race    sim.Race
	Schemas Schemas
}

// Validate ensures the player identity and schemas are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Spec == sim.SpecUnknown {
		vb.RequiredField("Spec")
	}
	if !c.Class.Valid() {
		vb.InvalidField("Class", "unknown class")
	}
	if err := c.Schemas.Validate(); err != nil {
		vb.InvalidField("Schemas", errors.GetMessage(err))
	}
	return vb.Build()
}

// Player owns one build. It is not safe for concurrent use: all mutations
// are expected on one logical thread, in the order user interactions are
// dispatched.
type Player struct {
	name  string
	spec  sim.Spec
	class sim.Class
	race  sim.Race

	schemas       Schemas
	records       map[RecordKind]*settings.Record
	talentsString string
	gear          sim.EquipmentSpec
	epWeights     *sim.Stats

	rotationChange  *events.Event[*Player]
	optionsChange   *events.Event[*Player]
	talentsChange   *events.Event[*Player]
	gearChange      *events.Event[*Player]
	epWeightsChange *events.Event[*Player]
	nameChange      *events.Event[*Player]
	change          *events.Event[*Player]
}

// New creates a player with every record at its schema defaults
func New(cfg *Config) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid player config")
	}

	p := &Player{
		name:    cfg.Name,
		spec:    cfg.Spec,
		class:   cfg.Class,
		race:    cfg.Race,
		schemas: cfg.Schemas,
		records: map[RecordKind]*settings.Record{
			RecordRotation: settings.NewRecord(cfg.Schemas.Rotation),
			RecordOptions:  settings.NewRecord(cfg.Schemas.Options),
			RecordTalents:  settings.NewRecord(cfg.Schemas.Talents),
		},
		rotationChange:  events.New[*Player]("rotation_change"),
		optionsChange:   events.New[*Player]("options_change"),
		talentsChange:   events.New[*Player]("talents_change"),
		gearChange:      events.New[*Player]("gear_change"),
		epWeightsChange: events.New[*Player]("ep_weights_change"),
		nameChange:      events.New[*Player]("name_change"),
		change:          events.New[*Player]("change"),
	}
	return p, nil
}

// Name returns the player name
func (p *Player) Name() string { return p.name }

// Spec returns the player spec
func (p *Player) Spec() sim.Spec { return p.spec }

// Class returns the player class
func (p *Player) Class() sim.Class { return p.class }

// Race returns the player race
func (p *Player) Race() sim.Race { return p.race }

// Schemas returns the record schemas
func (p *Player) Schemas() Schemas { return p.schemas }

// Rotation is the live, read-only rotation record
func (p *Player) Rotation() settings.Reader { return p.records[RecordRotation] }

// Options is the live, read-only spec options record
func (p *Player) Options() settings.Reader { return p.records[RecordOptions] }

// Talents is the live, read-only talents record
func (p *Player) Talents() settings.Reader { return p.records[RecordTalents] }

// Record returns the read-only view of one record kind
func (p *Player) Record(kind RecordKind) (settings.Reader, error) {
	r, ok := p.records[kind]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown record %q", kind)
	}
	return r, nil
}

// TalentsString returns the talent calculator string
func (p *Player) TalentsString() string { return p.talentsString }

// Gear returns a copy of the equipped gear
func (p *Player) Gear() sim.EquipmentSpec { return p.gear.Clone() }

// EPWeights returns the stat weights, or nil when none were computed yet
func (p *Player) EPWeights() *sim.Stats {
	if p.epWeights == nil {
		return nil
	}
	w := *p.epWeights
	return &w
}

// RotationChange fires after the rotation record changed
func (p *Player) RotationChange() *events.Event[*Player] { return p.rotationChange }

// OptionsChange fires after the spec options record changed
func (p *Player) OptionsChange() *events.Event[*Player] { return p.optionsChange }

// TalentsChange fires after the talents record or talents string changed
func (p *Player) TalentsChange() *events.Event[*Player] { return p.talentsChange }

// GearChange fires after the gear changed
func (p *Player) GearChange() *events.Event[*Player] { return p.gearChange }

// EPWeightsChange fires after the stat weights changed
func (p *Player) EPWeightsChange() *events.Event[*Player] { return p.epWeightsChange }

// NameChange fires after the name or race changed
func (p *Player) NameChange() *events.Event[*Player] { return p.nameChange }

// Change fires once after any change
func (p *Player) Change() *events.Event[*Player] { return p.change }

// RecordChange returns the change event of one record kind
func (p *Player) RecordChange(kind RecordKind) *events.Event[*Player] {
	switch kind {
	case RecordRotation:
		return p.rotationChange
	case RecordOptions:
		return p.optionsChange
	case RecordTalents:
		return p.talentsChange
	default:
		return nil
	}
}

func (p *Player) allEvents() []events.Freezable {
	return []events.Freezable{
		p.rotationChange,
		p.optionsChange,
		p.talentsChange,
		p.gearChange,
		p.epWeightsChange,
		p.nameChange,
		p.change,
	}
}

// Batch runs fn as one logical change: every event emitted inside fires at
// most once, after fn returns
func (p *Player) Batch(fn func()) {
	events.Batch(fn, p.allEvents()...)
}

func (p *Player) emit(eventID events.EventID, event *events.Event[*Player]) {
	p.Batch(func() {
		event.Emit(eventID, p)
		p.change.Emit(eventID, p)
	})
}

// SetField writes one field of a record and announces the change
func (p *Player) SetField(eventID events.EventID, kind RecordKind, field string, value any) error {
	r, ok := p.records[kind]
	if !ok {
		return errors.InvalidArgumentf("unknown record %q", kind)
	}
	if err := r.SetField(field, value); err != nil {
		return err
	}
	p.emit(eventID, p.RecordChange(kind))
	return nil
}

// LoadRecord writes several fields of a record as one change
func (p *Player) LoadRecord(eventID events.EventID, kind RecordKind, values map[string]any) error {
	r, ok := p.records[kind]
	if !ok {
		return errors.InvalidArgumentf("unknown record %q", kind)
	}
	if err := r.Load(values); err != nil {
		return err
	}
	p.emit(eventID, p.RecordChange(kind))
	return nil
}

// SetTalentsString replaces the talent calculator string
func (p *Player) SetTalentsString(eventID events.EventID, talents string) {
	if talents == p.talentsString {
		return
	}
	p.talentsString = talents
	p.emit(eventID, p.talentsChange)
}

// SetGear replaces the equipped gear
func (p *Player) SetGear(eventID events.EventID, gear sim.EquipmentSpec) {
	p.gear = gear.Clone()
	p.emit(eventID, p.gearChange)
}

// SetEPWeights replaces the stat weights. nil clears them.
func (p *Player) SetEPWeights(eventID events.EventID, weights *sim.Stats) {
	if weights == nil {
		p.epWeights = nil
	} else {
		w := *weights
		p.epWeights = &w
	}
	p.emit(eventID, p.epWeightsChange)
}

// SetName renames the player
func (p *Player) SetName(eventID events.EventID, name string) {
	if name == p.name {
		return
	}
	p.name = name
	p.emit(eventID, p.nameChange)
}

// SetRace changes the player race
func (p *Player) SetRace(eventID events.EventID, race sim.Race) error {
	if race != sim.RaceUnknown && !race.Valid() {
		return errors.InvalidArgumentf("unknown race %q", race)
	}
	if race == p.race {
		return nil
	}
	p.race = race
	p.emit(eventID, p.nameChange)
	return nil
}
