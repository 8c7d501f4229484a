package errors

import (
	"errors"
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of err, CodeOK for nil and CodeInternal for
// errors that are not *Error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of err, if any
func GetMeta(err error) map[string]any {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}
	return nil
}

// GetMessage returns the user facing message of err
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return err.Error()
}

// IsNotFound checks for CodeNotFound
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument checks for CodeInvalidArgument
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists checks for CodeAlreadyExists
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsFailedPrecondition checks for CodeFailedPrecondition
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

// IsOutOfRange checks for CodeOutOfRange
func IsOutOfRange(err error) bool { return GetCode(err) == CodeOutOfRange }

// IsInternal checks for CodeInternal
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

// IsUnavailable checks for CodeUnavailable
func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

// IsDataLoss checks for CodeDataLoss
func IsDataLoss(err error) bool { return GetCode(err) == CodeDataLoss }

// IsAborted checks for CodeAborted
func IsAborted(err error) bool { return GetCode(err) == CodeAborted }

// IsCanceled checks for CodeCanceled
func IsCanceled(err error) bool { return GetCode(err) == CodeCanceled }

// IsDeadlineExceeded checks for CodeDeadlineExceeded
func IsDeadlineExceeded(err error) bool { return GetCode(err) == CodeDeadlineExceeded }
