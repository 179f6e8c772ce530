// Package server exposes dialect detection and import over HTTP.
//
// Routes:
//
//	GET  /health                 liveness probe
//	POST /v1/sniff               body = document, returns {"dialect": "..."}
//	POST /v1/import?format=json  body = document, returns the converted model
//
// /v1/import accepts the query parameters format (json, svg, dot,
// graph-svg), dialect, duplicate_policy and tolerance. Import failures are
// reported as 422 with {"code", "message"}; malformed requests as 400.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rnaimport/pkg/observability"
	"github.com/matzehuels/rnaimport/pkg/pipeline"
)

// Option configures a [Server].
type Option func(*Server)

// WithDefaults sets the pipeline options every request starts from.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithTimeout bounds the handling time of a request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// Server routes API requests to a pipeline runner.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	timeout  time.Duration
}

// New creates a Server backed by runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.New(io.Discard),
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/sniff", s.handleSniff)
		r.Post("/import", s.handleImport)
	})

	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
