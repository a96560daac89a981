package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"stockagent/pkg/errors"
)

const flushTimeout = 2 * time.Second

// Tracker reports to Sentry. Events are grouped by error kind rather than by message,
// since upstream messages carry symbols and status codes.
type Tracker struct {
	hub *sentry.Hub
}

var _ errors.Tracker = (*Tracker)(nil)

// New initializes the Sentry client. An empty dsn yields a client that sends nothing.
func New(dsn, environment, release string) (*Tracker, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init sentry")
	}

	return &Tracker{hub: sentry.CurrentHub()}, nil
}

func (t *Tracker) hubFor(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return t.hub
}

// CaptureError sends err with tags plus its kind.
func (t *Tracker) CaptureError(ctx context.Context, err error, tags map[string]string) error {
	if err == nil {
		return nil
	}

	kind := errors.Kind(err)
	hub := t.hubFor(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		scope.SetTag("kind", kind)
		scope.SetFingerprint([]string{"{{ default }}", kind})
		hub.CaptureException(err)
	})
	return nil
}

// AddBreadcrumb records a step on the hub so it is attached to the next captured error.
func (t *Tracker) AddBreadcrumb(ctx context.Context, message string, category string, data map[string]interface{}) {
	t.hubFor(ctx).AddBreadcrumb(&sentry.Breadcrumb{
		Message:   message,
		Category:  category,
		Level:     sentry.LevelInfo,
		Data:      data,
		Timestamp: time.Now(),
	}, nil)
}

// Flush waits for pending events to be sent.
func (t *Tracker) Flush(ctx context.Context) error {
	timeout := flushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if !t.hub.Flush(timeout) {
		return errors.Wrap(errors.ErrTimeout, "sentry flush")
	}
	return nil
}
