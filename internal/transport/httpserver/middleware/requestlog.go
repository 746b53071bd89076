package middleware

import (
	"net/http"
	"time"

	"chores-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRequestLog logs one line per request: info for 2xx/3xx, warn for 4xx and
// error for 5xx.
func NewRequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimw.GetReqID(r.Context()),
			}

			reqLog := log.ForContext(r.Context())
			switch {
			case status >= http.StatusInternalServerError:
				reqLog.Error("http request", args...)
			case status >= http.StatusBadRequest:
				reqLog.Warn("http request", args...)
			default:
				reqLog.Info("http request", args...)
			}
		})
	}
}
