package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockagent/pkg/errors"
)

func TestNewRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(ProviderNameGroq, 0)
	assert.True(t, limiter.Allow())
	assert.NoError(t, limiter.Wait(context.Background()))
	assert.Equal(t, -1.0, limiter.Limit())
}

func TestNewRateLimiter_Enabled(t *testing.T) {
	limiter := NewRateLimiter(ProviderNameGroq, 30)
	assert.Equal(t, 30.0, limiter.Limit())

	// burst is 10% of the per-minute limit
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestRateLimitError_Unwrap(t *testing.T) {
	limiter := NewRateLimiter(ProviderNameGroq, 1)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	waitErr := limiter.Wait(ctx)
	require.Error(t, waitErr)

	err := &RateLimitError{Provider: ProviderNameGroq, Limit: limiter.Limit(), Err: waitErr}
	assert.Contains(t, err.Error(), "groq")
	assert.Contains(t, err.Error(), "1 req/min")
	assert.True(t, errors.Is(err, errors.ErrRateLimitExceeded))
}
