package services

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy bounds retry attempts for calls the orchestrator wraps
// directly. Delays grow exponentially from BaseDelay with up to one second
// of jitter per attempt.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy matches the pipeline's historical behaviour: three
// retries starting at one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Retry invokes fn until it succeeds, the attempt budget is exhausted, or
// ctx is cancelled. The last error is returned unwrapped so sentinel
// classification survives.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = time.Second
	}

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == policy.MaxAttempts-1 {
			break
		}
		delay := policy.BaseDelay<<uint(attempt) + time.Duration(rand.Int63n(int64(time.Second)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}
