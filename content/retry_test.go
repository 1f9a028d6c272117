package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), DefaultRetryPolicy(), func(context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryRecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	policy := RetryPolicy{MaxAttempts: 3, Backoff: LinearBackoff(time.Millisecond)}
	err := Retry(context.Background(), policy, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("store unreachable")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhaustionSpacing(t *testing.T) {
	// Three consecutive failures must produce exactly 3 attempts spaced at
	// least 350ms and 700ms apart before the error surfaces.
	var stamps []time.Time
	err := Retry(context.Background(), DefaultRetryPolicy(), func(context.Context) error {
		stamps = append(stamps, time.Now())
		return errors.New("network error")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	require.Len(t, stamps, 3)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 350*time.Millisecond)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 700*time.Millisecond)
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	policy := RetryPolicy{MaxAttempts: 3, Backoff: LinearBackoff(time.Hour)}

	err := Retry(ctx, policy, func(context.Context) error {
		calls++
		cancel()
		return errors.New("store unreachable")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(350 * time.Millisecond)
	assert.Equal(t, 350*time.Millisecond, backoff(1))
	assert.Equal(t, 700*time.Millisecond, backoff(2))
	assert.Equal(t, 1050*time.Millisecond, backoff(3))
}
