package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/cloud-streams/cloud-streams-operator/pkg/monitoring"
)

// instrumentationMiddleware gives each request a span and a request-scoped
// logger, and records the request in the health API metrics.
func instrumentationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		ctx := monitoring.ExtractTraceContext(r.Context(), r.Header)
		ctx, span := monitoring.StartChildSpan(ctx, r.Method+" "+route)
		defer span.End()

		logger := log.FromContext(ctx).WithValues("method", r.Method, "path", route)
		ctx = log.IntoContext(ctx, logger)
		ctx = monitoring.EnrichLoggerWithTrace(ctx)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r.WithContext(ctx))

		if rw.status >= http.StatusInternalServerError {
			monitoring.RecordSpanError(span, fmt.Errorf("%s %s: %s", r.Method, route, http.StatusText(rw.status)))
		}
		monitoring.RecordHealthRequest(rw.status, time.Since(start))
		log.FromContext(ctx).V(1).Info("Served request", "status", rw.status, "duration", time.Since(start).String())
	})
}

// recoveryMiddleware turns a handler panic into a 500 problem. Once the
// response has started the status can no longer change, so the connection
// is aborted instead and the client sees a truncated body.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger := log.FromContext(r.Context())
				if rw.wroteHeader {
					logger.Error(fmt.Errorf("%v", rec), "Recovered from panic after response started; aborting", "status", rw.status)
					panic(http.ErrAbortHandler)
				}
				logger.Error(fmt.Errorf("%v", rec), "Recovered from panic in HTTP handler")
				writeProblem(w, http.StatusInternalServerError, "")
			}
		}()
		next.ServeHTTP(rw, r)
	})
}

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying flusher.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
