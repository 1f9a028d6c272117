package content

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy bounds how often an operation is reattempted and how long to
// wait between attempts. The policy is configuration; the loop lives in
// Retry.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// LinearBackoff returns a backoff function growing by step per attempt:
// step, 2*step, 3*step, ...
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// DefaultRetryPolicy matches the retry budget used by client-visible reads:
// 3 attempts with a 350ms linear backoff, roughly 2.1s worst case.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: LinearBackoff(350 * time.Millisecond)}
}

// Retry runs op up to p.MaxAttempts times, sleeping p.Backoff(attempt) after
// each failure. It stops early when ctx is done and returns the last error
// wrapped with the attempt count.
func Retry(ctx context.Context, p RetryPolicy, op func(context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return fmt.Errorf("after %d attempts: %w", p.MaxAttempts, lastErr)
}
