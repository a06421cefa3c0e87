package http

import (
	"net/http"

	"outlog/internal/models"
	"outlog/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter carries what a handler did back out to the metrics and completion log middlewares.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError   *svcerrors.ServiceError
	compaction *models.CompactionResult
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor)}
}

func (w *appResponseWriter) setServiceError(svcErr *svcerrors.ServiceError) {
	w.svcError = svcErr
}

func (w *appResponseWriter) setCompaction(result *models.CompactionResult) {
	w.compaction = result
}

func (w *appResponseWriter) errorCode() string {
	if w.svcError == nil {
		return ""
	}
	return w.svcError.Code
}

// statusCode is the written status, 200 when the handler never called WriteHeader.
func (w *appResponseWriter) statusCode() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// recordCompaction is a no-op when w is not wrapped, as in handler unit tests.
func recordCompaction(w http.ResponseWriter, result *models.CompactionResult) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.setCompaction(result)
	}
}
