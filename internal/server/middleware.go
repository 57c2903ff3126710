package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/realapps-go/internal/metrics"
)

// slowRequestThreshold is the duration above which requests are logged at
// WARN level. Proxied chat completions routinely take seconds; everything
// else should stay well under this.
const slowRequestThreshold = 2 * time.Second

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestLogger returns middleware that tags each request with an ID, logs
// it with timing, records it in the collector, and converts panics into a
// JSON 500.
func RequestLogger(logger *slog.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				duration := time.Since(start)
				if collector != nil {
					collector.RecordTiming(metrics.OpHTTPRequest, duration)
				}

				attrs := []any{
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"status", sw.status,
					"duration_ms", duration.Milliseconds(),
				}

				if rec := recover(); rec != nil {
					logger.Error("request panicked", append(attrs, "panic", rec)...)
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}

				if duration > slowRequestThreshold {
					logger.Warn("slow request", attrs...)
				} else {
					logger.Debug("request completed", attrs...)
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
