package http

import (
	"net/http"

	"outlog/internal/compactors"
	"outlog/internal/shared/loggers"
	"outlog/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// RouterOptions holds what the handlers need beyond the compaction service.
type RouterOptions struct {
	Marker       string
	MaxBodyBytes int64
}

// NewRouter creates and configures the HTTP router.
func NewRouter(compactionService compactors.CompactionService, opts RouterOptions, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	compactionHandler := NewCompactionHandler(compactionService, opts.MaxBodyBytes)
	patternsHandler := NewPatternsHandler(compactionService, opts.Marker)

	// Routes
	router.Post("/compactions", adapt(compactionHandler))
	router.Get("/patterns", adapt(patternsHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
