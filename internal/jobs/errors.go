package jobs

import "fmt"

// ValidationError represents a caller-supplied input failing a precondition.
// It is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}
