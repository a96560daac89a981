package shared

import (
	"context"
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"stockagent/internal/metrics"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// ToolBuilder provides a fluent API for creating typed function tools with middleware
type ToolBuilder[TArgs, TResults any] struct {
	name        string
	description string
	fn          ToolFunc[TArgs, TResults]
	log         *logger.Logger

	timeout   time.Duration
	withStats bool
}

// NewToolBuilder creates a builder for a tool
func NewToolBuilder[TArgs, TResults any](name, description string, fn ToolFunc[TArgs, TResults], deps Deps) *ToolBuilder[TArgs, TResults] {
	return &ToolBuilder[TArgs, TResults]{
		name:        name,
		description: description,
		fn:          fn,
		log:         deps.Logger(),
	}
}

// WithTimeout bounds each call; zero or negative leaves calls unbounded
func (b *ToolBuilder[TArgs, TResults]) WithTimeout(timeout time.Duration) *ToolBuilder[TArgs, TResults] {
	b.timeout = timeout
	return b
}

// WithStats enables Prometheus metrics and call logging
func (b *ToolBuilder[TArgs, TResults]) WithStats() *ToolBuilder[TArgs, TResults] {
	b.withStats = true
	return b
}

// Build creates the tool. Middleware order: timeout (inner) -> stats (outer).
func (b *ToolBuilder[TArgs, TResults]) Build() (tool.Tool, error) {
	fn := b.fn

	if b.timeout > 0 {
		fn = TimeoutMiddleware[TArgs, TResults](b.timeout)(b.name, fn)
	}
	if b.withStats {
		fn = StatsMiddleware[TArgs, TResults](b.log)(b.name, fn)
	}

	t, err := functiontool.New(
		functiontool.Config{
			Name:        b.name,
			Description: b.description,
		},
		func(ctx tool.Context, args TArgs) (TResults, error) {
			return fn(ctx, args)
		})
	if err != nil {
		return nil, errors.Wrapf(err, "create tool %s", b.name)
	}
	return t, nil
}

// TimeoutMiddleware enforces a per-call deadline.
func TimeoutMiddleware[TArgs, TResults any](timeout time.Duration) Middleware[TArgs, TResults] {
	return func(name string, next ToolFunc[TArgs, TResults]) ToolFunc[TArgs, TResults] {
		return func(ctx context.Context, args TArgs) (TResults, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			res, err := next(ctx, args)
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				var zero TResults
				return zero, errors.Wrapf(errors.ErrTimeout, "%s after %s", name, timeout)
			}
			return res, err
		}
	}
}

// StatsMiddleware records execution metrics and logs each call.
func StatsMiddleware[TArgs, TResults any](log *logger.Logger) Middleware[TArgs, TResults] {
	return func(name string, next ToolFunc[TArgs, TResults]) ToolFunc[TArgs, TResults] {
		return func(ctx context.Context, args TArgs) (TResults, error) {
			start := time.Now()
			res, err := next(ctx, args)
			latency := time.Since(start)

			metrics.RecordToolExecution(name, latency, err)
			if err != nil {
				log.Warnw("Tool failed", "tool", name, "kind", errors.Kind(err), "latency", latency, "error", err)
			} else {
				log.Debugw("Tool completed", "tool", name, "latency", latency)
			}

			return res, err
		}
	}
}
