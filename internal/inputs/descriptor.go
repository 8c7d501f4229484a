// Package inputs builds field-bound inputs: declarative descriptors that bind
// one field of a player's configuration record to a control, validate writes
// against the field's legal values, and decide whether the control is enabled
// and visible for the current build.
//
// Descriptors are stateless after construction. They hold a record kind and a
// field name, never a copy of the value, so the player stays the single
// mutation authority.
package inputs

import (
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// Predicate decides something about a build. Predicates must be pure
// functions of the player's current state.
type Predicate func(p *player.Player) bool

// Config is shared by every input kind
type Config struct {
	Record       player.RecordKind
	FieldName    string
	Label        string
	LabelTooltip string
	// ActionID shows an icon instead of (or next to) the label
	ActionID *sim.ActionID

	EnableWhen Predicate
	ShowWhen   Predicate
}

// Validate checks the binding target
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.FieldName == "" {
		vb.RequiredField("FieldName")
	}
	if _, err := player.ParseRecordKind(string(c.Record)); err != nil {
		vb.InvalidField("Record", errors.GetMessage(err))
	}
	return vb.Build()
}

// Input is the kind-independent view of a descriptor, used by panels and
// the service layer
type Input interface {
	FieldName() string
	Record() player.RecordKind
	Kind() settings.Kind
	Label() string
	Enabled(p *player.Player) bool
	Visible(p *player.Player) bool
	ReadAny(p *player.Player) (any, error)
	WriteAny(eventID events.EventID, p *player.Player, raw any) error
	Describe(p *player.Player) State
}

// Descriptor binds one field of kind T. T is bool, int32, float64 or
// settings.Set.
type Descriptor[T any] struct {
	cfg        Config
	kind       settings.Kind
	options    []Option
	numColumns int
	bounds     *Bounds

	check func(value T) (T, error)
}

var (
	_ Input = (*Descriptor[bool])(nil)
	_ Input = (*Descriptor[int32])(nil)
	_ Input = (*Descriptor[float64])(nil)
	_ Input = (*Descriptor[settings.Set])(nil)
)

// FieldName returns the bound field
func (d *Descriptor[T]) FieldName() string { return d.cfg.FieldName }

// Record returns the record kind the field lives in
func (d *Descriptor[T]) Record() player.RecordKind { return d.cfg.Record }

// Kind returns the field kind
func (d *Descriptor[T]) Kind() settings.Kind { return d.kind }

// Label returns the display label
func (d *Descriptor[T]) Label() string { return d.cfg.Label }

// LabelTooltip returns the label tooltip
func (d *Descriptor[T]) LabelTooltip() string { return d.cfg.LabelTooltip }

// ActionID returns the icon reference, if any
func (d *Descriptor[T]) ActionID() *sim.ActionID { return d.cfg.ActionID }

// NumColumns is the layout hint of multi-select inputs
func (d *Descriptor[T]) NumColumns() int { return d.numColumns }

// Bounds returns the number constraints, if any
func (d *Descriptor[T]) Bounds() *Bounds { return d.bounds }

// Options returns a copy of the legal options
func (d *Descriptor[T]) Options() []Option {
	if d.options == nil {
		return nil
	}
	out := make([]Option, len(d.options))
	copy(out, d.options)
	return out
}

// VisibleOptions returns the options whose ShowWhen holds for p
func (d *Descriptor[T]) VisibleOptions(p *player.Player) []Option {
	out := make([]Option, 0, len(d.options))
	for _, o := range d.options {
		if o.ShowWhen == nil || o.ShowWhen(p) {
			out = append(out, o)
		}
	}
	return out
}

// Enabled evaluates EnableWhen; inputs without one are always enabled
func (d *Descriptor[T]) Enabled(p *player.Player) bool {
	return d.cfg.EnableWhen == nil || d.cfg.EnableWhen(p)
}

// Visible evaluates ShowWhen; inputs without one are always visible
func (d *Descriptor[T]) Visible(p *player.Player) bool {
	return d.cfg.ShowWhen == nil || d.cfg.ShowWhen(p)
}

// Read returns the current stored value
func (d *Descriptor[T]) Read(p *player.Player) (T, error) {
	var zero T

	r, err := p.Record(d.cfg.Record)
	if err != nil {
		return zero, err
	}
	raw, err := r.GetField(d.cfg.FieldName)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		return zero, errors.Internalf("field %s holds %T, input expects %T", d.cfg.FieldName, raw, zero).
			WithMeta(errors.MetaField, d.cfg.FieldName)
	}
	return v, nil
}

// ReadAny is Read without the static type
func (d *Descriptor[T]) ReadAny(p *player.Player) (any, error) {
	return d.Read(p)
}

// Write validates value, stores it and announces the change. A rejected
// value leaves the record unchanged.
func (d *Descriptor[T]) Write(eventID events.EventID, p *player.Player, value T) error {
	v, err := d.check(value)
	if err != nil {
		return err
	}
	return p.SetField(eventID, d.cfg.Record, d.cfg.FieldName, v)
}

// WriteAny coerces a decoded value (JSON, YAML, structpb) and writes it
func (d *Descriptor[T]) WriteAny(eventID events.EventID, p *player.Player, raw any) error {
	coerced, err := settings.Coerce(d.kind, raw)
	if err != nil {
		return errors.InvalidValue(d.cfg.FieldName, raw)
	}
	v, ok := coerced.(T)
	if !ok {
		return errors.InvalidValue(d.cfg.FieldName, raw)
	}
	return d.Write(eventID, p, v)
}

func (d *Descriptor[T]) optionIndex(value int32) int {
	for i, o := range d.options {
		if o.Value == value {
			return i
		}
	}
	return -1
}
