package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fundline/internal/api/health"
	"fundline/internal/metrics"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	Port        int
	ServiceName string
	Version     string
}

// Handlers bundles the route handlers. Nil entries leave the route
// unregistered, which keeps partial deployments possible in tests.
type Handlers struct {
	Chat         *ChatHandler
	Leads        *LeadsHandler
	Applications *ApplicationsHandler
	Analytics    *AnalyticsHandler
	Health       *health.Handler
}

// Server wraps the HTTP server with lifecycle management.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures the HTTP server with all routes.
func NewServer(cfg ServerConfig, h Handlers, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	if h.Chat != nil {
		mux.Handle("/api/chat", h.Chat)
	}
	if h.Leads != nil {
		mux.Handle("/api/leads", h.Leads)
	}
	if h.Applications != nil {
		mux.Handle("/api/applications/", h.Applications)
	}
	if h.Analytics != nil {
		mux.Handle("/api/analytics/dropoff", h.Analytics)
	}

	// Health check endpoints (Kubernetes probes)
	if h.Health != nil {
		mux.HandleFunc("/health", h.Health.HandleHealth)
		mux.HandleFunc("/ready", h.Health.HandleReadiness)
		mux.HandleFunc("/live", h.Health.HandleLiveness)
	}

	// Prometheus metrics endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Root endpoint (service info)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"service":"%s","version":"%s","status":"running"}`,
			cfg.ServiceName, cfg.Version)
	})

	port := 8080
	if cfg.Port > 0 {
		port = cfg.Port
	}

	log.Infof("HTTP server configured on port %d", port)

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		// Chat responses stream for up to several LLM round-trips, so
		// the write timeout has to outlast the whole tool loop.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests. Blocks until the server is
// stopped or encounters an error.
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server, waiting for active
// connections to complete within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("HTTP server stopped")
	return nil
}
