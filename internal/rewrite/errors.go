package rewrite

// ValidationError indicates the caller supplied input the rewriter cannot
// work with. It is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
