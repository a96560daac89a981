package bootstrap

import (
	"context"
	"time"

	"stockagent/internal/api"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// Lifecycle manages graceful shutdown of what the container started
type Lifecycle struct {
	shutdownTimeout time.Duration
}

// NewLifecycle creates a new lifecycle manager
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		shutdownTimeout: 15 * time.Second,
	}
}

// Shutdown stops components in order: ops server, error tracker, logs.
// opsServer may be nil.
func (l *Lifecycle) Shutdown(ctx context.Context, opsServer *api.Server, tracker errors.Tracker, log *logger.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.shutdownTimeout)
	defer cancel()

	log.Info("[1/3] Stopping ops server...")
	if opsServer != nil {
		httpCtx, httpCancel := context.WithTimeout(shutdownCtx, 5*time.Second)
		if err := opsServer.Shutdown(httpCtx); err != nil {
			log.Errorw("Ops server shutdown failed", "error", err)
		}
		httpCancel()
	}

	log.Info("[2/3] Flushing error tracker...")
	l.flushErrorTracker(shutdownCtx, tracker, log)

	log.Info("[3/3] Syncing logs...")
	if err := logger.Sync(); err != nil {
		// stderr/stdout sync commonly fails with EINVAL on terminals
		log.Debugw("Log sync completed with warnings", "error", err)
	}

	log.Info("✅ Shutdown complete")
}

// flushErrorTracker flushes the error tracker (Sentry, etc.)
func (l *Lifecycle) flushErrorTracker(ctx context.Context, tracker errors.Tracker, log *logger.Logger) {
	if tracker == nil {
		return
	}

	flushCtx, flushCancel := context.WithTimeout(ctx, 3*time.Second)
	defer flushCancel()

	if err := tracker.Flush(flushCtx); err != nil {
		log.Errorw("Error tracker flush failed", "error", err)
	} else {
		log.Info("✓ Error tracker flushed")
	}
}
