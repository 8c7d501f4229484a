package errors

import "fmt"

// Meta keys attached by the domain constructors below
const (
	MetaField  = "field"
	MetaValue  = "value"
	MetaReason = "reason"
	MetaAsset  = "asset"
)

// Reasons distinguish the build-level failure kinds that share a transport code
const (
	ReasonInvalidValue    = "invalid_value"
	ReasonOutOfRange      = "out_of_range"
	ReasonDataUnavailable = "data_unavailable"
	ReasonFetchFailure    = "fetch_failure"
)

// InvalidValue reports a write rejected because the value is outside the
// declared option set of a field. The configuration is left unchanged.
func InvalidValue(field string, value any) *Error {
	return InvalidArgumentf("value %v is not a legal option for field %s", value, field).
		WithMeta(MetaField, field).
		WithMeta(MetaValue, fmt.Sprint(value)).
		WithMeta(MetaReason, ReasonInvalidValue)
}

// ValueOutOfRange reports a numeric write outside [minValue, maxValue]
func ValueOutOfRange(field string, value, minValue, maxValue float64) *Error {
	return OutOfRangef("value %g for field %s must be between %g and %g", value, field, minValue, maxValue).
		WithMeta(MetaField, field).
		WithMeta(MetaValue, fmt.Sprint(value)).
		WithMeta(MetaReason, ReasonOutOfRange)
}

// DataUnavailable reports an operation requested before its prerequisite
// data exists, e.g. an EP export before weights were computed.
func DataUnavailable(what string) *Error {
	return FailedPreconditionf("%s is not available yet", what).
		WithMeta(MetaReason, ReasonDataUnavailable)
}

// FetchFailure wraps a failed reference data retrieval
func FetchFailure(err error, asset string) *Error {
	return WrapWithCodef(err, CodeUnavailable, "failed to fetch %s", asset).
		WithMeta(MetaAsset, asset).
		WithMeta(MetaReason, ReasonFetchFailure)
}

// GetReason extracts the domain reason recorded by the constructors above
func GetReason(err error) string {
	reason, _ := GetMeta(err)[MetaReason].(string)
	return reason
}

// IsInvalidValue checks if an error is an invalid field value error
func IsInvalidValue(err error) bool {
	return IsInvalidArgument(err) && GetReason(err) == ReasonInvalidValue
}

// IsDataUnavailable checks if an error reports missing prerequisite data
func IsDataUnavailable(err error) bool {
	return IsFailedPrecondition(err) && GetReason(err) == ReasonDataUnavailable
}

// IsFetchFailure checks if an error is a reference data fetch failure
func IsFetchFailure(err error) bool {
	return IsUnavailable(err) && GetReason(err) == ReasonFetchFailure
}
