package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"stockagent/internal/api/health"
	"stockagent/internal/metrics"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// ServerConfig contains configuration for the ops HTTP server
type ServerConfig struct {
	Addr string
}

// Server exposes /metrics and health probes next to the playground launcher.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures the ops server
func NewServer(cfg ServerConfig, healthHandler *health.Handler, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler.HandleHealth)
	mux.HandleFunc("/live", healthHandler.HandleLiveness)
	mux.Handle("/metrics", metrics.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

// Handler returns the server's routes, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting ops server on %s", s.httpServer.Addr)

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrap(err, "ops server listen failed")
	}

	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "ops server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "ops server shutdown failed")
	}

	s.log.Info("✓ Ops server stopped")
	return nil
}
