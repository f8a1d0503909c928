package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysnprv/cvpilot/internal/llm"
)

func fastPolicy() *Policy {
	p := NewPolicy(nil)
	p.BaseDelay = time.Millisecond
	return p
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return &llm.ProviderError{Message: "transient"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_MalformedResponseIsRetried(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls == 1 {
			return &llm.BadResponseError{Message: "not JSON"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_FatalErrorPropagatesImmediately(t *testing.T) {
	fatal := errors.New("validation failed")
	calls := 0
	err := fastPolicy().Do(context.Background(), "op", func(context.Context) error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustionWrapsLastError(t *testing.T) {
	last := &llm.ProviderError{Message: "still down"}
	calls := 0
	err := fastPolicy().Do(context.Background(), "job parse", func(context.Context) error {
		calls++
		return last
	})

	assert.Equal(t, DefaultMaxAttempts, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "job parse", exhausted.Op)
	assert.Equal(t, DefaultMaxAttempts, exhausted.Attempts)

	// The last attempt's failure stays reachable through the chain
	var provider *llm.ProviderError
	assert.ErrorAs(t, err, &provider)
}

func TestDo_ContextCancellationStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	p := NewPolicy(nil)
	p.BaseDelay = time.Hour
	err := p.Do(ctx, "op", func(context.Context) error {
		calls++
		cancel()
		return &llm.ProviderError{Message: "transient"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledContextErrorIsFatal(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), "op", func(context.Context) error {
		calls++
		return context.DeadlineExceeded
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
}

func TestDo_BackoffDoubles(t *testing.T) {
	p := NewPolicy(nil)
	p.BaseDelay = 10 * time.Millisecond

	start := time.Now()
	_ = p.Do(context.Background(), "op", func(context.Context) error {
		return &llm.ProviderError{Message: "x"}
	})
	elapsed := time.Since(start)

	// Two backoffs at 10ms and 20ms before the final attempt
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestDo_ZeroMaxAttemptsStillRunsOnce(t *testing.T) {
	p := &Policy{MaxAttempts: 0, BaseDelay: time.Millisecond}
	calls := 0
	_ = p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})
	assert.Equal(t, 1, calls)
}
