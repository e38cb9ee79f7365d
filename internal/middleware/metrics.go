package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cargo-charter/charterdesk/internal/logging"
	"cargo-charter/charterdesk/internal/metrics"
)

type requestIDKey struct{}

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware(metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The chi route pattern is only complete after routing, so
			// the in-flight gauge uses the normalized URL path instead.
			inFlightLabel := NormalizeEndpoint(r.URL.Path)
			metricsReg.HTTPRequestsInFlight.WithLabelValues(inFlightLabel).Inc()
			defer metricsReg.HTTPRequestsInFlight.WithLabelValues(inFlightLabel).Dec()

			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: 200}

			next.ServeHTTP(wrapped, r)

			routePattern := chi.RouteContext(r.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = inFlightLabel
			}

			duration := time.Since(start).Seconds()
			statusCode := strconv.Itoa(wrapped.statusCode)

			metricsReg.HTTPRequestsTotal.WithLabelValues(
				routePattern,
				r.Method,
				statusCode,
			).Inc()

			metricsReg.HTTPRequestDuration.WithLabelValues(
				routePattern,
				r.Method,
			).Observe(duration)

			logging.Info("HTTP request completed",
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"endpoint", routePattern,
				"status_code", wrapped.statusCode,
				"duration_ms", int(duration*1000),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// RequestIDMiddleware adds a request ID to the context if not present
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

		// Add to response header for tracing
		w.Header().Add("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request ID assigned by
// RequestIDMiddleware, or "" when the middleware never ran.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// statusRecorder wraps http.ResponseWriter to capture the status code
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
		r.statusCode = 200
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}

// NormalizeEndpoint normalizes an endpoint path for metrics.
// Removes IDs to avoid metric cardinality explosion,
// e.g. /api/v1/operators/12345 -> /api/v1/operators/{id}
func NormalizeEndpoint(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if isIDLike(part) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// isIDLike checks if a string looks like an ID (numeric or UUID)
func isIDLike(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			if strings.Contains(s, "-") && len(s) == 36 {
				return true
			}
			return false
		}
	}
	return true
}
