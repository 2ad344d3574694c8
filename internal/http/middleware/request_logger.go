package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/la-masion/booking-api/pkg/logging"
)

// RequestLogger emits structured logs for every HTTP request.
func RequestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			reqLogger := logger.With(
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
			)
			reqLogger.Info("request started", "remote_ip", r.RemoteAddr)
			next.ServeHTTP(w, r)
			reqLogger.Info("request completed", "duration_ms", time.Since(start).Milliseconds())
		})
	}
}
