// Package settings implements the configuration records a player owns:
// rotation, spec options and talents. A record is created from a schema and
// always holds exactly one value of the declared kind for every field.
package settings

import (
	"fmt"

	"github.com/KirkDiggler/simui-api/internal/errors"
)

// Kind is the semantic kind of a field
type Kind int

// Field kinds
const (
	KindBool Kind = iota + 1
	KindEnum
	KindNumber
	KindSet
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindNumber:
		return "number"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FieldSpec declares one field of a record.
//
// Values use one Go type per kind: bool, int32, float64 and Set.
// A nil Default means the zero value of the kind.
type FieldSpec struct {
	Name    string
	Kind    Kind
	Default any
}

// Schema declares the fields of one record type, e.g. the enhancement
// shaman rotation
type Schema struct {
	Name   string
	Fields []FieldSpec

	index map[string]int
}

// NewSchema builds and validates a schema
func NewSchema(name string, fields ...FieldSpec) (*Schema, error) {
	s := &Schema{Name: name, Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that field names are unique and defaults match the kinds
func (s *Schema) Validate() error {
	vb := errors.NewValidationBuilder()
	if s.Name == "" {
		vb.RequiredField("name")
	}

	index := make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			vb.Fieldf("fields", "field %d has no name", i)
			continue
		}
		if _, dup := index[f.Name]; dup {
			vb.Fieldf(f.Name, "is declared more than once")
			continue
		}
		index[f.Name] = i

		if f.Kind < KindBool || f.Kind > KindSet {
			vb.Fieldf(f.Name, "has unknown kind %d", int(f.Kind))
			continue
		}
		if f.Default != nil {
			if _, err := Coerce(f.Kind, f.Default); err != nil {
				vb.InvalidField(f.Name, err.Error())
			}
		}
	}

	if err := vb.Build(); err != nil {
		return errors.Wrapf(err, "invalid schema %s", s.Name)
	}
	s.index = index
	return nil
}

// Field returns the spec of a field by name
func (s *Schema) Field(name string) (FieldSpec, bool) {
	if s.index == nil {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
		return FieldSpec{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.Fields[i], true
}

func (f FieldSpec) defaultValue() any {
	if f.Default != nil {
		v, err := Coerce(f.Kind, f.Default)
		if err == nil {
			return v
		}
	}
	return zeroValue(f.Kind)
}

func zeroValue(kind Kind) any {
	switch kind {
	case KindBool:
		return false
	case KindEnum:
		return int32(0)
	case KindNumber:
		return float64(0)
	case KindSet:
		return Set(nil)
	default:
		return nil
	}
}
