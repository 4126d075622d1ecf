package http

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/metrics"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so that the first one is outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Telemetry records every completed request in collector, after the
// response has been written.
func Telemetry(collector *metrics.Collector, instanceID string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)
			collector.RecordRequestCompletion(instanceID, m.Code, roundMillis(m.Duration))
		})
	}
}

// roundMillis rounds d to the nearest millisecond.
func roundMillis(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d.Round(time.Millisecond) / time.Millisecond)
}

// CleanPaths sends requests whose path is not in canonical form to the JSON
// 404 instead of letting ServeMux redirect them.
func CleanPaths(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; p != canonicalPath(p) {
			notFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func canonicalPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/" + p
	}
	clean := path.Clean(p)
	if strings.HasSuffix(p, "/") && clean != "/" {
		clean += "/"
	}
	return clean
}

// Logger assigns a request id, stores a request-scoped logger in the
// context and logs completion at V(1).
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := log.FromContext(r.Context()).WithValues("requestID", id)
		r = r.WithContext(log.IntoContext(r.Context(), logger))

		m := httpsnoop.CaptureMetrics(next, w, r)
		logger.V(1).Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"duration", m.Duration,
			"bytes", m.Written)
	})
}

// Recover turns a handler panic into a 500 JSON reply.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			err := fmt.Errorf("%v", p)
			log.FromContext(r.Context()).Error(err, "Handler panicked", "path", r.URL.Path)
			writeInternalError(w, r, err.Error())
		}()
		next.ServeHTTP(w, r)
	})
}
