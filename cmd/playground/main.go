package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stockagent/internal/adapters/config"
	"stockagent/internal/bootstrap"
	"stockagent/pkg/logger"
)

// Serves the web search and finance agents behind the framework's web UI.
// Arguments are passed to the launcher unchanged, e.g. `playground web api webui`.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "playground:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, bootstrap.Options{DefaultModel: true})
	if err != nil {
		return err
	}
	defer c.Shutdown(context.Background())

	if err := c.ServePlayground(ctx, os.Args[1:]); err != nil {
		logger.Get().Errorw("Playground exited with error", "error", err)
		return err
	}
	return nil
}
