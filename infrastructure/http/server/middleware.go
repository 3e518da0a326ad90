package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const slowRequestThreshold = 2 * time.Second

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps the recorder usable for the event stream.
func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// instrument logs every request and feeds the per-route counters.
func instrument(log *slog.Logger, metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			metrics.RequestsTotal.WithLabelValues(route, statusClass(recorder.status)).Inc()

			duration := time.Since(start)
			if duration > slowRequestThreshold {
				log.Warn("Slow request detected",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", duration,
					"remote_ip", r.RemoteAddr)
				return
			}
			log.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration", duration)
		})
	}
}
