package ratelimit

import (
	"context"
	"math"

	"golang.org/x/time/rate"

	"stockagent/pkg/errors"
)

// Limiter throttles outbound API calls (model provider, search, market data).
type Limiter struct {
	limiter *rate.Limiter
	name    string
	rpm     int
}

// NewLimiter creates a new rate limiter.
// requestsPerMinute: maximum number of requests allowed per minute; <= 0 disables limiting.
func NewLimiter(name string, requestsPerMinute int) *Limiter {
	if requestsPerMinute <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0), name: name}
	}

	// Allow burst of 10% of per-minute limit
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst),
		name:    name,
		rpm:     requestsPerMinute,
	}
}

// Wait blocks until the rate limiter allows the request
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(errors.ErrRateLimitExceeded, "rate limiter %s: %v", l.name, err)
	}
	return nil
}

// Allow checks if a request is allowed without blocking
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Limit returns the configured requests per minute, or +Inf when unlimited.
func (l *Limiter) Limit() float64 {
	if l.rpm <= 0 {
		return math.Inf(1)
	}
	return float64(l.rpm)
}

// Name returns the limiter name used in errors.
func (l *Limiter) Name() string {
	return l.name
}
