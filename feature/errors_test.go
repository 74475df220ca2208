package feature

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"invalid geometry wrapped", fmt.Errorf("circle: %w", ErrInvalidGeometry), CodeInvalidGeometry},
		{"invalid enum", ErrInvalidEnumValue, CodeInvalidEnumValue},
		{"incomplete descriptor", ErrIncompleteDescriptor, CodeIncompleteDescriptor},
		{"invalid chain spec", ErrInvalidChainSpec, CodeInvalidChainSpec},
		{"context cancelled", context.Canceled, CodeCancelled},
		{"deadline exceeded", context.DeadlineExceeded, CodeCancelled},
		{"coded error passthrough", &stubRemoteError{code: CodeRemoteRejected}, CodeRemoteRejected},
		{
			"chain error delegates to cause",
			&ChainError{Step: 1, Stage: StageExtrude, Err: &stubRemoteError{code: CodeTransportFailure}},
			CodeTransportFailure,
		},
		{
			"chain error over sentinel",
			&ChainError{Step: 0, Stage: StageSketch, Err: context.Canceled},
			CodeCancelled,
		},
		{"unclassified", errors.New("boom"), CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}
