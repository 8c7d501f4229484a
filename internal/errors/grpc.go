package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	detailsCodeKey = "code"
	detailsMetaKey = "meta"
)

// ToGRPCError converts err to a gRPC status error. Metadata travels as a
// google.protobuf.Struct detail {code, meta}.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !errors.As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if len(customErr.Meta) == 0 {
		return st.Err()
	}
	details, detailsErr := errorDetails(customErr)
	if detailsErr != nil {
		return st.Err()
	}
	if withDetails, detailsErr := st.WithDetails(details); detailsErr == nil {
		st = withDetails
	}
	return st.Err()
}

// FromGRPCError converts a gRPC status error back to *Error, restoring the
// metadata detail when present. Other errors are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		if details, ok := detail.(*structpb.Struct); ok {
			if meta := details.GetFields()[detailsMetaKey].GetStructValue(); meta != nil {
				customErr.Meta = meta.AsMap()
			}
			break
		}
	}
	return customErr
}

// errorDetails builds the status detail. Validation errors become lists;
// other meta values structpb cannot hold are sent as strings.
func errorDetails(err *Error) (*structpb.Struct, error) {
	meta := make(map[string]any, len(err.Meta))
	for k, v := range err.Meta {
		if fields, ok := v.(map[string][]string); ok {
			v = validationDetail(fields)
		}
		if _, convErr := structpb.NewValue(v); convErr != nil {
			meta[k] = fmt.Sprint(v)
			continue
		}
		meta[k] = v
	}
	return structpb.NewStruct(map[string]any{
		detailsCodeKey: string(err.Code),
		detailsMetaKey: meta,
	})
}

func validationDetail(fields map[string][]string) map[string]any {
	out := make(map[string]any, len(fields))
	for field, messages := range fields {
		list := make([]any, len(messages))
		for i, m := range messages {
			list[i] = m
		}
		out[field] = list
	}
	return out
}
