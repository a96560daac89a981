package ratelimit

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockagent/pkg/errors"
)

func TestLimiter_Burst(t *testing.T) {
	// 60 req/min => burst of 6
	limiter := NewLimiter("test", 60)

	for i := 0; i < 6; i++ {
		assert.True(t, limiter.Allow(), "request %d should fit in burst", i)
	}
	assert.False(t, limiter.Allow(), "burst exhausted")
	assert.Equal(t, 60.0, limiter.Limit())
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter("slow", 1)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRateLimitExceeded))
	assert.Contains(t, err.Error(), "slow")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter("off", 0)
	for i := 0; i < 100; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
	assert.True(t, math.IsInf(limiter.Limit(), 1))
}
