package errors

import (
	"fmt"
	"sort"
	"strings"
)

// MetaValidationErrors is the meta key holding map[string][]string of
// messages per field
const MetaValidationErrors = "validation_errors"

// ValidationError collects messages per field
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// Error lists the fields in name order
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, field := range names {
		parts[i] = fmt.Sprintf("%s: %s", field, strings.Join(v.Fields[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// AddFieldError adds a message for field
func (v *ValidationError) AddFieldError(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

// AddFieldErrorf adds a formatted message for field
func (v *ValidationError) AddFieldErrorf(field, format string, args ...any) {
	v.AddFieldError(field, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any field failed
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ToError converts to an InvalidArgument error carrying the fields under
// MetaValidationErrors, or nil when nothing failed
func (v *ValidationError) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}
	return InvalidArgument(v.Error()).WithMeta(MetaValidationErrors, v.Fields)
}

// ValidationBuilder accumulates field errors. Build returns nil when no
// field failed.
type ValidationBuilder struct {
	err *ValidationError
}

// NewValidationBuilder creates a builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{err: NewValidationError()}
}

// Field adds a message for field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.err.AddFieldError(field, message)
	return vb
}

// Fieldf adds a formatted message for field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	vb.err.AddFieldErrorf(field, format, args...)
	return vb
}

// RequiredField marks field as missing
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField marks field as invalid with a reason
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns the accumulated error, or nil
func (vb *ValidationBuilder) Build() error {
	if vb.err.HasErrors() {
		return vb.err.ToError()
	}
	return nil
}

// ValidateRequired fails blank strings
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange fails values outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateEnum fails values not in allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
}
