package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts:  attempts,
		BaseBackoff:  time.Millisecond,
		MaxBackoff:   4 * time.Millisecond,
		JitterFactor: 0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(ctx context.Context) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	}, func(error) bool { return true })

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(ctx context.Context) error {
		calls++
		return boom
	}, func(error) bool { return true })

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(ctx context.Context) error {
		calls++
		return permanent
	}, func(err error) bool { return false })

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := Policy{MaxAttempts: 5, BaseBackoff: time.Minute, MaxBackoff: time.Minute}
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, p, func(ctx context.Context) error {
			return errors.New("boom")
		}, func(error) bool { return true })
	}()

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
}

func TestBackoff_DoublesAndCaps(t *testing.T) {
	p := Policy{BaseBackoff: time.Second, MaxBackoff: 4 * time.Second, JitterFactor: 0}

	assert.Equal(t, time.Second, Backoff(p, 0))
	assert.Equal(t, 2*time.Second, Backoff(p, 1))
	assert.Equal(t, 4*time.Second, Backoff(p, 2))
	assert.Equal(t, 4*time.Second, Backoff(p, 10))
}

func TestBackoff_JitterBounds(t *testing.T) {
	p := Policy{BaseBackoff: time.Second, MaxBackoff: time.Second, JitterFactor: 0.5}

	for i := 0; i < 100; i++ {
		d := Backoff(p, 0)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 1500*time.Millisecond)
	}
}
