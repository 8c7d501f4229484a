// Package errors is the error vocabulary of simui-api.
//
// Every layer returns *Error values carrying a Code, a user facing message,
// an optional cause and metadata. Codes line up with gRPC status codes so the
// handler can return them without translation tables of its own.
//
// # Creating and wrapping
//
//	err := errors.NotFoundf("build %s not found", id).WithMeta("build_id", id)
//
//	if err := r.client.Get(ctx, key).Err(); err != nil {
//	    return errors.Wrapf(err, "failed to get build %s", id)
//	}
//
// Wrap keeps the code and metadata of a wrapped *Error, so a NotFound from the
// repository is still a NotFound after the orchestrator adds context. Use
// WrapWithCode when a layer knows better, e.g. a stored snapshot that no longer
// decodes becomes DataLoss.
//
// Aborted marks an edit that lost a race with another write to the same build.
// The orchestrator retries those before giving up.
//
// # Build-level kinds
//
// domain.go adds the failure kinds users see while editing a build:
//
//   - InvalidValue: a write outside a field's option set (INVALID_ARGUMENT)
//   - ValueOutOfRange: a number outside its declared bounds (OUT_OF_RANGE)
//   - DataUnavailable: an export before its inputs exist (FAILED_PRECONDITION)
//   - FetchFailure: reference data could not be fetched (UNAVAILABLE)
//
// They share transport codes with plain errors and are told apart by the
// "reason" meta key, see IsInvalidValue and friends.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("spec", input.Spec, vb)
//	if input.Snapshot == nil {
//	    vb.RequiredField("snapshot")
//	}
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Build returns InvalidArgument with the per-field messages under
// MetaValidationErrors.
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err). Metadata travels as a
// google.protobuf.Struct status detail and FromGRPCError restores it on the
// client side.
package errors
