// Package server exposes the document pipeline over HTTP: a batch classify
// endpoint, a health endpoint, and a configuration echo endpoint.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/loandesk/docsort/internal/classify"
	"github.com/loandesk/docsort/internal/pipeline"
	"github.com/loandesk/docsort/internal/storage"
)

// Server wires the pipeline, classification configuration, and optional
// audit store behind an HTTP router.
type Server struct {
	pipeline *pipeline.Pipeline
	ruleset  classify.Ruleset
	store    *storage.Store // nil disables the audit trail
	logger   *slog.Logger
	router   *mux.Router
	hasModel bool
}

// New creates a server. store may be nil when no audit database is
// configured.
func New(p *pipeline.Pipeline, ruleset classify.Ruleset, hasModel bool, store *storage.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		pipeline: p,
		ruleset:  ruleset,
		store:    store,
		logger:   logger,
		hasModel: hasModel,
	}

	r := mux.NewRouter()
	r.Use(s.requestLogger)
	r.HandleFunc("/classify", s.handleClassify).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)
	s.router = r

	return s
}

// Router returns the HTTP handler for the server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start))
	})
}
