// Package server exposes the radar pipeline over HTTP.
//
// The API mirrors the pipeline stages: POST /api/v1/layout computes
// positions, POST /api/v1/render produces an artifact, GET /api/v1/charts
// returns the distribution summary. All endpoints are stateless; caching
// happens inside the shared [pipeline.Runner].
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sfeldkamp/quadrant/pkg/pipeline"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config holds optional configuration for the Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080". Use ":0" to pick a free
	// port (useful in tests).
	Addr string
}

// Server serves the radar API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	addr   string
	srv    *http.Server
	ln     net.Listener
}

// New creates a Server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &Server{
		runner: runner,
		logger: logger,
		addr:   addr,
	}
}

// Router builds the HTTP handler. Exposed separately so tests can drive
// the API through httptest without opening a socket.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Get("/charts", s.handleCharts)
	})
	return r
}

// Start begins serving on the configured address. It blocks until the
// listener is ready, then serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("serve failed", "error", err)
		}
	}()

	s.logger.Info("listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the listener address, useful for tests with port 0.
func (s *Server) Addr() net.Addr {
	if s.ln != nil {
		return s.ln.Addr()
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
