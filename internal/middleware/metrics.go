package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"alumnihub/portal/internal/auth"
	"alumnihub/portal/internal/logging"
	"alumnihub/portal/internal/metrics"
)

// Metrics records per-request Prometheus metrics and emits the access
// log line once the handler completes.
func Metrics(reg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			reg.HTTPRequestsInFlight.WithLabelValues(r.Method).Inc()
			start := time.Now()
			next.ServeHTTP(wrapped, r)
			duration := time.Since(start)
			reg.HTTPRequestsInFlight.WithLabelValues(r.Method).Dec()

			// The route pattern is only final after the handler ran.
			routePattern := chi.RouteContext(r.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = "unknown"
			}

			statusCode := strconv.Itoa(wrapped.statusCode)
			reg.HTTPRequestsTotal.WithLabelValues(routePattern, r.Method, statusCode).Inc()
			reg.HTTPRequestDuration.WithLabelValues(routePattern, r.Method).Observe(duration.Seconds())

			logging.Info("http request completed",
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"endpoint", routePattern,
				"status_code", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"caller_id", auth.CallerID(r.Context()),
			)
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}
