package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Allow("client"), "request %d within burst", i)
	}

	err := rl.Allow("client")
	require.Error(t, err)

	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 60, rlErr.Limit)
	assert.Positive(t, rlErr.RetryAfter)
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(60, 1)

	require.NoError(t, rl.Allow("a"))
	require.Error(t, rl.Allow("a"))
	require.NoError(t, rl.Allow("b"))
}

func TestRateLimiterRefill(t *testing.T) {
	// 6000 requests/minute refills 100 tokens per second, so draining the
	// bucket and retrying immediately should still be near-instant.
	rl := NewRateLimiter(6000, 1)

	require.NoError(t, rl.Allow("client"))
	err := rl.Allow("client")
	if err != nil {
		var rlErr *RateLimitError
		require.True(t, errors.As(err, &rlErr))
		assert.Less(t, rlErr.RetryAfter.Milliseconds(), int64(20))
	}
}

func TestRateLimiterMinimumBurst(t *testing.T) {
	rl := NewRateLimiter(60, 0)
	require.NoError(t, rl.Allow("client"), "burst is clamped to at least one token")
}
