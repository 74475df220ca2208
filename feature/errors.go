package feature

import (
	"context"
	"errors"
)

// Validation errors raised while constructing or building descriptors. All
// of them are detected locally, before any feature definition is submitted.
var (
	// ErrInvalidGeometry reports shape parameters that cannot form a valid
	// entity, such as a non-positive circle radius or a zero-length line.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidEnumValue reports a token outside a closed enum set.
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrIncompleteDescriptor reports a build attempt on a descriptor that
	// is missing a required field or collection.
	ErrIncompleteDescriptor = errors.New("incomplete descriptor")

	// ErrInvalidChainSpec reports a counterbore step list that cannot be
	// planned: mismatched radius/depth lengths or fewer than two steps.
	ErrInvalidChainSpec = errors.New("invalid chain spec")
)

// Stable error codes used by observability and by the tool layer when
// rendering failures.
const (
	CodeInvalidGeometry      = "INVALID_GEOMETRY"
	CodeInvalidEnumValue     = "INVALID_ENUM_VALUE"
	CodeIncompleteDescriptor = "INCOMPLETE_DESCRIPTOR"
	CodeInvalidChainSpec     = "INVALID_CHAIN_SPEC"
	CodeRemoteRejected       = "REMOTE_REJECTED"
	CodeTransportFailure     = "TRANSPORT_FAILURE"
	CodeCancelled            = "CANCELLED"
	CodeUnknown              = "UNKNOWN"
)

// CodedError is implemented by error types that carry a stable code of
// their own, such as the transport layer's rejection errors.
type CodedError interface {
	error
	ErrorCode() string
}

// ErrorCode classifies err into one of the stable code constants. Wrapped
// errors are unwrapped, so a chain failure caused by a remote rejection
// classifies as the rejection.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	switch {
	case errors.Is(err, ErrInvalidGeometry):
		return CodeInvalidGeometry
	case errors.Is(err, ErrInvalidEnumValue):
		return CodeInvalidEnumValue
	case errors.Is(err, ErrIncompleteDescriptor):
		return CodeIncompleteDescriptor
	case errors.Is(err, ErrInvalidChainSpec):
		return CodeInvalidChainSpec
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancelled
	}
	return CodeUnknown
}
