// Package httpserver provides the HTTP JSON API for the citation service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/helixir/citation-service/internal/citation"
	"github.com/helixir/citation-service/internal/sources"
)

// CitationGenerator renders a citation for a raw identifier.
// *citation.Generator satisfies it.
type CitationGenerator interface {
	Generate(ctx context.Context, raw string) (*citation.Result, error)
}

// SourceLister reports which metadata sources are serving requests.
// *sources.Registry satisfies it.
type SourceLister interface {
	EnabledSources() []sources.Source
}

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	generator  CitationGenerator
	sources    SourceLister
	validate   *validator.Validate
	cfg        Config
	logger     zerolog.Logger
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// RequestTimeout bounds each citation request, including the upstream call.
	// Zero disables the bound.
	RequestTimeout time.Duration

	// MaxIdentifierLength rejects longer identifiers with 400.
	MaxIdentifierLength int
}

const defaultMaxIdentifierLength = 2048

// NewServer creates a new HTTP server.
func NewServer(cfg Config, generator CitationGenerator, lister SourceLister, logger zerolog.Logger) *Server {
	if cfg.MaxIdentifierLength <= 0 {
		cfg.MaxIdentifierLength = defaultMaxIdentifierLength
	}

	s := &Server{
		generator: generator,
		sources:   lister,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		cfg:       cfg,
		logger:    logger.With().Str("component", "http-server").Logger(),
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(requestLogger(s.logger))
	r.Use(jsonContentTypeMiddleware)

	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api/citation", func(r chi.Router) {
		r.Post("/", s.createCitation)
		r.Get("/", s.getCitation)
	})

	return r
}

// Handler returns the root handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler reports ready while at least one source is enabled.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	enabled := s.sources.EnabledSources()
	names := make([]string, len(enabled))
	for i, src := range enabled {
		names[i] = src.Name()
	}

	if len(names) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, readinessResponse{
			Status:  "not_ready",
			Sources: names,
		})
		return
	}
	writeJSON(w, http.StatusOK, readinessResponse{
		Status:  "ready",
		Sources: names,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}
