package settings

import (
	"maps"
	"sort"

	"github.com/KirkDiggler/simui-api/internal/errors"
)

// Record is a mutable configuration object. Every write bumps its version.
//
// A Record is not safe for concurrent use; it is owned by a single player.
type Record struct {
	schema  *Schema
	values  map[string]any
	version uint64
}

// NewRecord creates a record holding the schema defaults
func NewRecord(schema *Schema) *Record {
	values := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		values[f.Name] = f.defaultValue()
	}
	return &Record{schema: schema, values: values}
}

// Schema returns the schema the record was created from
func (r *Record) Schema() *Schema {
	return r.schema
}

// Version counts successful writes
func (r *Record) Version() uint64 {
	return r.version
}

// GetField returns the current value of a field
func (r *Record) GetField(name string) (any, error) {
	v, ok := r.values[name]
	if !ok {
		return nil, errors.InvalidArgumentf("%s has no field %s", r.schema.Name, name).
			WithMeta(errors.MetaField, name)
	}
	if set, isSet := v.(Set); isSet {
		return set.Clone(), nil
	}
	return v, nil
}

// SetField replaces the value of a field. The value is coerced to the
// field kind; on error the record is unchanged.
func (r *Record) SetField(name string, value any) error {
	spec, ok := r.schema.Field(name)
	if !ok {
		return errors.InvalidArgumentf("%s has no field %s", r.schema.Name, name).
			WithMeta(errors.MetaField, name)
	}

	v, err := Coerce(spec.Kind, value)
	if err != nil {
		return errors.Wrapf(err, "invalid value for %s.%s", r.schema.Name, name)
	}

	r.values[name] = v
	r.version++
	return nil
}

// Bool returns a bool field, false when the field is missing or not a bool
func (r *Record) Bool(name string) bool {
	b, _ := r.values[name].(bool)
	return b
}

// Enum returns an enum field, 0 when missing
func (r *Record) Enum(name string) int32 {
	e, _ := r.values[name].(int32)
	return e
}

// Number returns a number field, 0 when missing
func (r *Record) Number(name string) float64 {
	n, _ := r.values[name].(float64)
	return n
}

// Set returns a copy of a set field
func (r *Record) Set(name string) Set {
	s, _ := r.values[name].(Set)
	return s.Clone()
}

// Values returns a copy of every field value
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		if set, isSet := v.(Set); isSet {
			v = set.Clone()
		}
		out[k] = v
	}
	return out
}

// FieldNames returns the field names in schema order
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.schema.Fields))
	for _, f := range r.schema.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Load replaces the given fields. Every value is validated before anything
// is written, so a failed load leaves the record untouched. Fields missing
// from values keep their current value.
func (r *Record) Load(values map[string]any) error {
	coerced := make(map[string]any, len(values))

	// sorted for stable error messages
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec, ok := r.schema.Field(name)
		if !ok {
			return errors.InvalidArgumentf("%s has no field %s", r.schema.Name, name).
				WithMeta(errors.MetaField, name)
		}
		v, err := Coerce(spec.Kind, values[name])
		if err != nil {
			return errors.Wrapf(err, "invalid value for %s.%s", r.schema.Name, name)
		}
		coerced[name] = v
	}

	if len(coerced) == 0 {
		return nil
	}
	maps.Copy(r.values, coerced)
	r.version++
	return nil
}

// Reset restores every field to its default
func (r *Record) Reset() {
	for _, f := range r.schema.Fields {
		r.values[f.Name] = f.defaultValue()
	}
	r.version++
}

// Clone returns an independent copy with the same version
func (r *Record) Clone() *Record {
	return &Record{
		schema:  r.schema,
		values:  r.Values(),
		version: r.version,
	}
}

// Equal compares schema name and values, ignoring versions
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.schema.Name != other.schema.Name || len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		ov, ok := other.values[k]
		if !ok {
			return false
		}
		if set, isSet := v.(Set); isSet {
			otherSet, _ := ov.(Set)
			if !set.Equal(otherSet) {
				return false
			}
			continue
		}
		if v != ov {
			return false
		}
	}
	return true
}
