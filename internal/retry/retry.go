// Package retry executes LLM-backed operations with bounded retries on
// recoverable failures.
package retry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/llm"
)

const (
	// DefaultMaxAttempts bounds the total invocations of an operation
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the first backoff interval; it doubles per attempt
	DefaultBaseDelay = 500 * time.Millisecond
)

// Policy retries an operation on classified recoverable failures with
// exponential backoff. Transient provider errors and malformed generator
// output are retried; anything else propagates immediately.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	logger      *zap.Logger
}

// NewPolicy returns a Policy with the default attempt budget and backoff.
func NewPolicy(logger *zap.Logger) *Policy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		logger:      logger,
	}
}

// ExhaustedError surfaces after the attempt budget is spent, wrapping the
// failure of the last attempt.
type ExhaustedError struct {
	Op       string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do invokes op up to MaxAttempts times. A nil return ends the attempts
// immediately. Recoverable failures are retried after a backoff of
// BaseDelay * 2^attempt; the final one is returned wrapped in
// *ExhaustedError. Non-recoverable failures, including context
// cancellation, propagate at once.
func (p *Policy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var last error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !llm.IsRecoverable(err) {
			return err
		}

		last = err
		if attempt < maxAttempts-1 {
			delay := p.BaseDelay << uint(attempt)
			p.logger.Warn("operation failed, retrying",
				zap.String("op", op),
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", maxAttempts),
				zap.Duration("backoff", delay),
				zap.Error(err))
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}
	}

	p.logger.Error("operation failed on final attempt, giving up",
		zap.String("op", op),
		zap.Int("attempts", maxAttempts),
		zap.Error(last))
	return &ExhaustedError{Op: op, Attempts: maxAttempts, Last: last}
}

// sleep waits for the backoff interval, honoring caller cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
