package noop

import (
	"context"

	"stockagent/pkg/errors"
)

// Tracker drops every event. Used when error tracking is disabled and in tests.
type Tracker struct{}

var _ errors.Tracker = Tracker{}

func New() Tracker { return Tracker{} }

func (Tracker) CaptureError(context.Context, error, map[string]string) error { return nil }

func (Tracker) AddBreadcrumb(context.Context, string, string, map[string]interface{}) {}

func (Tracker) Flush(context.Context) error { return nil }
