// Package httpapi serves the documentation over HTTP: page resolution,
// navigation, search, simulated snippet runs and the theme preference.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/metrics"
	"github.com/rojifi/rojifi-docs/internal/runner"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	resolver      *docs.Resolver
	runner        *runner.Runner
	logger        *slog.Logger
	mcpPath       string
	mcpHandler    http.Handler
	errorHandlers []errorHandler
}

// Option configures a Server.
type Option func(*Server)

// WithMCP mounts an MCP streamable HTTP handler at path.
func WithMCP(path string, h http.Handler) Option {
	return func(s *Server) {
		s.mcpPath = path
		s.mcpHandler = h
	}
}

// NewServer creates the HTTP API server.
func NewServer(resolver *docs.Resolver, run *runner.Runner, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		resolver: resolver,
		runner:   run,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(docs.ErrPageNotFound, http.StatusNotFound, codePageNotFound),
		sentinelHandler(docs.ErrVersionNotFound, http.StatusNotFound, codeVersionNotFound),
		sentinelHandler(docs.ErrBlockNotFound, http.StatusNotFound, codeBlockNotFound),
		sentinelHandler(docs.ErrInvalidPath, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(runner.ErrNotRunnable, http.StatusUnprocessableEntity, codeNotRunnable),
		canceledHandler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router with the full middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/versions", s.ListVersions)

	r.Route("/docs", func(r chi.Router) {
		r.Get("/", s.GetPage)
		r.Route("/{version}", func(r chi.Router) {
			r.Get("/", s.GetPage)
			r.Get("/search", s.Search)
			r.Route("/{tab}", func(r chi.Router) {
				r.Get("/", s.GetPage)
				r.Get("/_nav", s.Navigation)
				r.Get("/{slug}", s.GetPage)
				r.Post("/{slug}/blocks/{index}/run", s.RunSnippet)
			})
		})
	})

	r.Get("/theme", s.GetTheme)
	r.Post("/theme", s.UpdateTheme)

	if s.mcpHandler != nil {
		r.Handle(s.mcpPath, s.mcpHandler)
	}

	return r
}
