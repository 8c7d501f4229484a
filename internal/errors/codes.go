package errors

import "google.golang.org/grpc/codes"

// Code classifies an error. Codes mirror the gRPC status codes the handler
// returns.
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeCanceled:           codes.Canceled,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeDeadlineExceeded:   codes.DeadlineExceeded,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeAborted:            codes.Aborted,
	CodeOutOfRange:         codes.OutOfRange,
	CodeUnimplemented:      codes.Unimplemented,
	CodeInternal:           codes.Internal,
	CodeUnavailable:        codes.Unavailable,
	CodeDataLoss:           codes.DataLoss,
}

var fromGRPCCodes = func() map[codes.Code]Code {
	m := make(map[codes.Code]Code, len(grpcCodes))
	for code, grpcCode := range grpcCodes {
		m[grpcCode] = code
	}
	return m
}()

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// GRPCCode returns the gRPC status code. Unknown codes map to Unknown.
func (c Code) GRPCCode() codes.Code {
	if grpcCode, ok := grpcCodes[c]; ok {
		return grpcCode
	}
	return codes.Unknown
}

// codeFromGRPC maps a gRPC status code back. Codes the service never
// produces become CodeInternal.
func codeFromGRPC(grpcCode codes.Code) Code {
	if code, ok := fromGRPCCodes[grpcCode]; ok {
		return code
	}
	return CodeInternal
}
