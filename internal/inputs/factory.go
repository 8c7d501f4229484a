package inputs

import (
	"math"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// Option is one legal value of an enum or multi-select field
type Option struct {
	Value int32
	// Display identity: a label, an icon or a color swatch, plus optional
	// overlay text on the icon
	Name     string
	ActionID *sim.ActionID
	Color    string
	Text     string

	ShowWhen Predicate
}

// Policy decides what a number input does with values outside its bounds
type Policy int

// Bound policies
const (
	// PolicyClamp silently bounds the value to the range
	PolicyClamp Policy = iota
	// PolicyReject fails the write with OutOfRange
	PolicyReject
)

// Bounds constrains a number input. A nil Min or Max is open.
type Bounds struct {
	Min    *float64
	Max    *float64
	Policy Policy
}

// Range is shorthand for closed bounds
func Range(minValue, maxValue float64, policy Policy) *Bounds {
	return &Bounds{Min: &minValue, Max: &maxValue, Policy: policy}
}

// AtLeast is shorthand for a lower bound only
func AtLeast(minValue float64, policy Policy) *Bounds {
	return &Bounds{Min: &minValue, Policy: policy}
}

func (b *Bounds) validate() error {
	if b == nil {
		return nil
	}
	if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
		return errors.InvalidArgumentf("bounds min %g is greater than max %g", *b.Min, *b.Max)
	}
	if b.Policy != PolicyClamp && b.Policy != PolicyReject {
		return errors.InvalidArgumentf("unknown bounds policy %d", int(b.Policy))
	}
	return nil
}

func (b *Bounds) apply(field string, v float64) (float64, error) {
	if b == nil {
		return v, nil
	}
	low, high := math.Inf(-1), math.Inf(1)
	if b.Min != nil {
		low = *b.Min
	}
	if b.Max != nil {
		high = *b.Max
	}
	if v >= low && v <= high {
		return v, nil
	}
	if b.Policy == PolicyReject {
		return 0, errors.ValueOutOfRange(field, v, low, high)
	}
	return math.Min(math.Max(v, low), high), nil
}

func validateOptions(options []Option) error {
	if len(options) == 0 {
		return errors.InvalidArgument("at least one option is required")
	}
	seen := make(map[int32]struct{}, len(options))
	for _, o := range options {
		if _, dup := seen[o.Value]; dup {
			return errors.InvalidArgumentf("option value %d is declared more than once", o.Value)
		}
		seen[o.Value] = struct{}{}
	}
	return nil
}

func copyOptions(options []Option) []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// NewBoolean binds a bool field
func NewBoolean(cfg Config) (*Descriptor[bool], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid boolean input")
	}
	return &Descriptor[bool]{
		cfg:   cfg,
		kind:  settings.KindBool,
		check: func(v bool) (bool, error) { return v, nil },
	}, nil
}

// NewEnum binds an enum field to an ordered list of options. Writing a value
// that is not one of the options fails with InvalidValue.
func NewEnum(cfg Config, options []Option) (*Descriptor[int32], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid enum input")
	}
	if err := validateOptions(options); err != nil {
		return nil, errors.Wrapf(err, "invalid enum input %s", cfg.FieldName)
	}

	d := &Descriptor[int32]{
		cfg:     cfg,
		kind:    settings.KindEnum,
		options: copyOptions(options),
	}
	d.check = func(v int32) (int32, error) {
		if d.optionIndex(v) < 0 {
			return 0, errors.InvalidValue(cfg.FieldName, v)
		}
		return v, nil
	}
	return d, nil
}

// NewMultiSelect binds a set field; each option toggles independently.
// numColumns is a layout hint and defaults to 1.
func NewMultiSelect(cfg Config, options []Option, numColumns int) (*Descriptor[settings.Set], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid multi-select input")
	}
	if err := validateOptions(options); err != nil {
		return nil, errors.Wrapf(err, "invalid multi-select input %s", cfg.FieldName)
	}
	if numColumns < 0 {
		return nil, errors.InvalidArgumentf("numColumns must not be negative, got %d", numColumns)
	}
	if numColumns == 0 {
		numColumns = 1
	}

	d := &Descriptor[settings.Set]{
		cfg:        cfg,
		kind:       settings.KindSet,
		options:    copyOptions(options),
		numColumns: numColumns,
	}
	d.check = func(v settings.Set) (settings.Set, error) {
		normalized := settings.NewSet(v...)
		for _, member := range normalized {
			if d.optionIndex(member) < 0 {
				return nil, errors.InvalidValue(cfg.FieldName, member)
			}
		}
		return normalized, nil
	}
	return d, nil
}

// NewNumber binds a number field with optional bounds
func NewNumber(cfg Config, bounds *Bounds) (*Descriptor[float64], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid number input")
	}
	if err := bounds.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid number input %s", cfg.FieldName)
	}

	return &Descriptor[float64]{
		cfg:    cfg,
		kind:   settings.KindNumber,
		bounds: bounds,
		check: func(v float64) (float64, error) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, errors.InvalidValue(cfg.FieldName, v)
			}
			return bounds.apply(cfg.FieldName, v)
		},
	}, nil
}

// Toggle flips one option of a multi-select input. Toggling the same option
// twice restores the original set.
func Toggle(eventID events.EventID, p *player.Player, d *Descriptor[settings.Set], value int32) error {
	current, err := d.Read(p)
	if err != nil {
		return err
	}
	return d.Write(eventID, p, current.Toggle(value))
}

// Validate checks that every input targets an existing field of the
// matching kind in the given schemas
func Validate(schemas player.Schemas, inputs ...Input) error {
	vb := errors.NewValidationBuilder()
	for _, in := range inputs {
		schema := schemas.Schema(in.Record())
		if schema == nil {
			vb.Fieldf(in.FieldName(), "targets unknown record %q", in.Record())
			continue
		}
		spec, ok := schema.Field(in.FieldName())
		if !ok {
			vb.Fieldf(in.FieldName(), "is not a field of %s", schema.Name)
			continue
		}
		if spec.Kind != in.Kind() {
			vb.Fieldf(in.FieldName(), "is a %s field, input is %s", spec.Kind, in.Kind())
		}
	}
	return vb.Build()
}
