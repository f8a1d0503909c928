package llm

import (
	"context"
	"errors"
	"fmt"
)

// ProviderError represents a transport or provider-side failure (network,
// timeout, quota). These are safe to retry.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// BadResponseError represents malformed or unusable generator output. These
// are safe to retry because a re-prompt may succeed.
type BadResponseError struct {
	Message string
	Cause   error
}

func (e *BadResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bad LLM response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bad LLM response: %s", e.Message)
}

func (e *BadResponseError) Unwrap() error {
	return e.Cause
}

// IsRecoverable reports whether err is classified as safe to retry.
// Context cancellation is never recoverable: a cancelled caller must not be
// kept waiting through further attempts.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var provider *ProviderError
	var bad *BadResponseError
	return errors.As(err, &provider) || errors.As(err, &bad)
}
