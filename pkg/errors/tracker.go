package errors

import (
	"context"
)

// Tracker reports errors to an external service (Sentry, or a no-op when disabled).
type Tracker interface {
	// CaptureError sends err with tags. Implementations add a "kind" tag from Kind(err).
	CaptureError(ctx context.Context, err error, tags map[string]string) error

	// AddBreadcrumb records a step leading up to a later error, such as a tool call
	AddBreadcrumb(ctx context.Context, message string, category string, data map[string]interface{})

	// Flush waits for pending events to be delivered
	Flush(ctx context.Context) error
}
