package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPMetricsMiddleware struct {
	next http.Handler
}

func NewHTTPMetricsMiddleware(next http.Handler) *HTTPMetricsMiddleware {
	return &HTTPMetricsMiddleware{
		next: next,
	}
}

func (m *HTTPMetricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	wrapped := &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default to 200
	}

	handlerName := extractHandlerName(r.URL.Path)

	m.next.ServeHTTP(wrapped, r)

	duration := time.Since(start).Seconds()
	statusCode := strconv.Itoa(wrapped.statusCode)

	HTTPRequestDuration.WithLabelValues(handlerName, r.Method, statusCode).Observe(duration)
	HTTPRequestsTotal.WithLabelValues(handlerName, r.Method, statusCode).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func extractHandlerName(path string) string {
	path = strings.TrimPrefix(path, "/")

	switch {
	case strings.HasPrefix(path, "auth"):
		return "auth"
	case strings.HasPrefix(path, "products"):
		return "products"
	case strings.HasPrefix(path, "checkout"):
		return "checkout"
	case strings.HasPrefix(path, "webhook"):
		return "webhook"
	case strings.HasPrefix(path, "download"):
		return "download"
	case strings.HasPrefix(path, "preview"):
		return "preview"
	case strings.HasPrefix(path, "library"):
		return "library"
	case strings.HasPrefix(path, "submissions"):
		return "submissions"
	case strings.HasPrefix(path, "metrics"):
		return "metrics"
	case strings.HasPrefix(path, "health"):
		return "health"
	default:
		parts := strings.Split(path, "/")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
		return "unknown"
	}
}

func WrapHandler(handler http.Handler) http.Handler {
	return NewHTTPMetricsMiddleware(handler)
}
