package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"outlog/internal/shared/loggers"
	"outlog/internal/shared/svcerrors"
	"outlog/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
)

const pathMetrics = "/metrics"

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(
		mwRequestID(httpLogger),
		mwAppResponseWriter,
		mwPrometheus,
		mwRequestCompletionLog,
		mwRecoverer,
	)
}

// mwRequestID reuses the caller's x-request-id or issues one, echoes it on the response and
// scopes the logger to it. Uploads naming their outlog also get a source_name field.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r)
			if id == "" {
				id = ulid.NewULID()
				setRequestID(r, id)
			}
			w.Header().Set(headerRequestID, id)

			logCtx := httpLogger.With().Str(loggers.FieldRequestID, id)
			if name := sourceName(r); name != "" {
				logCtx = logCtx.Str(loggers.FieldSourceName, name)
			}
			next.ServeHTTP(w, r.WithContext(logCtx.Logger().WithContext(r.Context())))
		})
	}
}

func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r.ProtoMajor), r)
	})
}

// mwPrometheus labels by chi route pattern so uploads never add label values per source name.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := routeLabel(r)
		status, errorCode := http.StatusOK, ""
		if appWriter, ok := w.(*appResponseWriter); ok {
			status, errorCode = appWriter.statusCode(), appWriter.errorCode()
		}
		labels := []string{r.Method, route, strconv.Itoa(status), errorCode}

		metricHTTPRequestsTotal.WithLabelValues(labels...).Inc()
		metricHTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		metricHTTPRequestsByClientTotal.WithLabelValues(route, clientFamily(r)).Inc()
	})
}

// mwRequestCompletionLog logs one line per compaction or catalogue request. Scrapes of
// /metrics are not logged.
func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		if r.URL.Path == pathMetrics {
			return
		}
		appWriter, ok := w.(*appResponseWriter)
		if !ok {
			return
		}

		event := loggers.Ctx(r.Context()).Info().
			Str(loggers.FieldHttpMethod, r.Method).
			Str(loggers.FieldHttpPath, routeLabel(r)).
			Int(loggers.FieldHttpStatus, appWriter.statusCode()).
			Dur(loggers.FieldDuration, time.Since(start))
		if code := appWriter.errorCode(); code != "" {
			event = event.Str(loggers.FieldErrorCode, code)
		}
		if result := appWriter.compaction; result != nil {
			event = event.
				Int(loggers.FieldLinesRead, result.LinesRead).
				Int(loggers.FieldLinesKept, result.LinesKept).
				Int(loggers.FieldLoops, result.Loops.Total())
		}
		event.Msg("request completed")
	})
}

// mwRecoverer answers a panicking handler with SYS_9000 instead of dropping the connection.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			loggers.Ctx(r.Context()).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("http panic recovered: %v", p)

			panicErr, ok := p.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", p)
			}
			writeError(w, r, svcerrors.NewInternalErrorPanic(panicErr))
		}()

		next.ServeHTTP(w, r)
	})
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
