// Package specs holds the registry of supported specs: the record schemas,
// the field inputs shown on the settings tab and the presets of each.
package specs

import (
	"sync"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// Definition describes one spec
type Definition struct {
	Spec        sim.Spec
	Class       sim.Class
	DefaultRace sim.Race
	Schemas     player.Schemas
	// Inputs in display order
	Inputs  []inputs.Input
	Presets []*Preset
}

// Validate checks that inputs and presets agree with the schemas. Preset
// values are checked the same way a user edit would be.
func (d *Definition) Validate() error {
	if d.Spec == sim.SpecUnknown {
		return errors.InvalidArgument("spec is required")
	}
	if err := d.Schemas.Validate(); err != nil {
		return errors.Wrapf(err, "invalid schemas for %s", d.Spec)
	}
	if err := inputs.Validate(d.Schemas, d.Inputs...); err != nil {
		return errors.Wrapf(err, "invalid inputs for %s", d.Spec)
	}

	seen := make(map[string]struct{}, len(d.Presets))
	for _, preset := range d.Presets {
		if _, dup := seen[preset.Name]; dup {
			return errors.InvalidArgumentf("preset %s is declared more than once for %s", preset.Name, d.Spec)
		}
		seen[preset.Name] = struct{}{}

		if err := d.validatePreset(preset); err != nil {
			return errors.Wrapf(err, "invalid preset %s for %s", preset.Name, d.Spec)
		}
	}
	return nil
}

func (d *Definition) validatePreset(preset *Preset) error {
	if preset.Name == "" {
		return errors.InvalidArgument("preset name is required")
	}
	if preset.EnableWhenTalent != "" {
		field, ok := d.Schemas.Talents.Field(preset.EnableWhenTalent)
		if !ok || field.Kind != settings.KindBool {
			return errors.InvalidArgumentf("enable_when_talent %s is not a bool talent", preset.EnableWhenTalent)
		}
	}

	scratch, err := d.NewPlayer("")
	if err != nil {
		return err
	}
	for _, kind := range player.RecordKinds() {
		values := preset.Record(kind)
		for field, value := range values {
			if in, ok := d.Input(kind, field); ok {
				if err := in.WriteAny(0, scratch, value); err != nil {
					return err
				}
			}
		}
		if err := scratch.LoadRecord(0, kind, values); err != nil {
			return err
		}
	}
	return nil
}

// NewPlayer creates a player of this spec at the schema defaults
func (d *Definition) NewPlayer(name string) (*player.Player, error) {
	return player.New(&player.Config{
		Name:    name,
		Spec:    d.Spec,
		Class:   d.Class,
		Race:    d.DefaultRace,
		Schemas: d.Schemas,
	})
}

// Input finds the input bound to a field
func (d *Definition) Input(kind player.RecordKind, field string) (inputs.Input, bool) {
	for _, in := range d.Inputs {
		if in.Record() == kind && in.FieldName() == field {
			return in, true
		}
	}
	return nil, false
}

// Preset finds a preset by name
func (d *Definition) Preset(name string) (*Preset, bool) {
	for _, p := range d.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// ApplyPreset applies the named preset to pl
func (d *Definition) ApplyPreset(eventID events.EventID, pl *player.Player, name string) error {
	preset, ok := d.Preset(name)
	if !ok {
		return errors.NotFoundf("preset %s not found for %s", name, d.Spec)
	}
	return preset.Apply(eventID, pl)
}

// Registry indexes definitions by spec
type Registry struct {
	order []sim.Spec
	defs  map[sim.Spec]*Definition
}

// NewRegistry validates and indexes definitions
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[sim.Spec]*Definition, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.defs[def.Spec]; dup {
			return nil, errors.AlreadyExistsf("spec %s is registered twice", def.Spec)
		}
		r.defs[def.Spec] = def
		r.order = append(r.order, def.Spec)
	}
	return r, nil
}

// Get returns the definition of a spec
func (r *Registry) Get(spec sim.Spec) (*Definition, error) {
	def, ok := r.defs[spec]
	if !ok {
		return nil, errors.NotFoundf("spec %s not found", spec)
	}
	return def, nil
}

// Schemas returns the record schemas of a spec
func (r *Registry) Schemas(spec sim.Spec) (player.Schemas, error) {
	def, err := r.Get(spec)
	if err != nil {
		return player.Schemas{}, err
	}
	return def.Schemas, nil
}

// Specs lists the registered specs in registration order
func (r *Registry) Specs() []sim.Spec {
	out := make([]sim.Spec, len(r.order))
	copy(out, r.order)
	return out
}

var (
	builtinOnce sync.Once
	builtin     *Registry
	builtinErr  error
)

// Builtin returns the registry of every supported spec
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		var defs []*Definition
		for _, build := range []func() (*Definition, error){
			EnhancementShaman,
			BalanceDruid,
			Warrior,
		} {
			def, err := build()
			if err != nil {
				builtinErr = err
				return
			}
			defs = append(defs, def)
		}
		builtin, builtinErr = NewRegistry(defs...)
	})
	return builtin, builtinErr
}
