package errors

import (
	"errors"
	"fmt"
)

// Error is a classified error with a user facing message and metadata
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code and metadata of a wrapped *Error are
// kept; any other error becomes CodeInternal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	code := CodeInternal
	var meta map[string]any
	var existing *Error
	if errors.As(err, &existing) {
		code = existing.Code
		meta = copyMeta(existing.Meta)
	}

	return &Error{Code: code, Message: message, Cause: err, Meta: meta}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and reclassifies it, keeping its metadata
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

// WrapWithCodef wraps and reclassifies err with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return WrapWithCode(err, code, fmt.Sprintf(format, args...))
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// NotFound creates a not found error
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf creates a not found error with a formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf creates an invalid argument error with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists creates an already exists error
func AlreadyExists(message string) *Error { return New(CodeAlreadyExists, message) }

// AlreadyExistsf creates an already exists error with a formatted message
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition creates a failed precondition error
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf creates a failed precondition error with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// OutOfRange creates an out of range error
func OutOfRange(message string) *Error { return New(CodeOutOfRange, message) }

// OutOfRangef creates an out of range error with a formatted message
func OutOfRangef(format string, args ...any) *Error { return Newf(CodeOutOfRange, format, args...) }

// Internal creates an internal error
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf creates an internal error with a formatted message
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }

// Unavailable creates an unavailable error
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

// Unavailablef creates an unavailable error with a formatted message
func Unavailablef(format string, args ...any) *Error { return Newf(CodeUnavailable, format, args...) }

// DataLoss creates a data loss error, used for stored builds that can no
// longer be read
func DataLoss(message string) *Error { return New(CodeDataLoss, message) }

// DataLossf creates a data loss error with a formatted message
func DataLossf(format string, args ...any) *Error { return Newf(CodeDataLoss, format, args...) }

// Aborted creates an aborted error, returned when a build changed while an
// edit was being applied
func Aborted(message string) *Error { return New(CodeAborted, message) }

// Abortedf creates an aborted error with a formatted message
func Abortedf(format string, args ...any) *Error { return Newf(CodeAborted, format, args...) }

// Canceled creates a canceled error
func Canceled(message string) *Error { return New(CodeCanceled, message) }

// Canceledf creates a canceled error with a formatted message
func Canceledf(format string, args ...any) *Error { return Newf(CodeCanceled, format, args...) }

// DeadlineExceeded creates a deadline exceeded error
func DeadlineExceeded(message string) *Error { return New(CodeDeadlineExceeded, message) }

// DeadlineExceededf creates a deadline exceeded error with a formatted message
func DeadlineExceededf(format string, args ...any) *Error {
	return Newf(CodeDeadlineExceeded, format, args...)
}
