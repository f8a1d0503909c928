package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"provider error", &ProviderError{Message: "timeout"}, true},
		{"bad response", &BadResponseError{Message: "not JSON"}, true},
		{"wrapped provider error", fmt.Errorf("iteration 1: %w", &ProviderError{Message: "x"}), true},
		{"plain error", errors.New("validation failed"), false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"provider error wrapping cancellation", &ProviderError{Message: "x", Cause: context.Canceled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecoverable(tt.err))
		})
	}
}

func TestProviderError_Message(t *testing.T) {
	err := &ProviderError{Message: "quota exceeded"}
	assert.Equal(t, "provider error: quota exceeded", err.Error())

	withCause := &ProviderError{Message: "request failed", Cause: errors.New("dial tcp: refused")}
	assert.Contains(t, withCause.Error(), "dial tcp")
	assert.ErrorIs(t, withCause, withCause.Cause)
}

func TestBadResponseError_Message(t *testing.T) {
	err := &BadResponseError{Message: "missing field"}
	assert.Equal(t, "bad LLM response: missing field", err.Error())
}
