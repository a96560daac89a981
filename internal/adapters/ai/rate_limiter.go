package ai

import (
	"context"
	"fmt"

	"stockagent/internal/adapters/ratelimit"
)

// RateLimiter paces calls to a provider. Limit is in requests per minute;
// a negative value means unlimited.
type RateLimiter interface {
	Wait(ctx context.Context) error
	Allow() bool
	Limit() float64
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }
func (unlimited) Allow() bool                { return true }
func (unlimited) Limit() float64             { return -1 }

// NewRateLimiter builds the limiter for provider. reqPerMinute <= 0 disables limiting.
func NewRateLimiter(provider ProviderName, reqPerMinute int) RateLimiter {
	if reqPerMinute <= 0 {
		return unlimited{}
	}
	return ratelimit.NewLimiter(provider.String(), reqPerMinute)
}

// RateLimitError is returned when a call could not get a slot before its context ended.
type RateLimitError struct {
	Provider ProviderName
	Limit    float64
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: no request slot within %.0f req/min: %v", e.Provider, e.Limit, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }
