package httpserver

import (
	"net/http"
	"time"

	"chores-app-go/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// New wraps the handler in otelhttp; with no tracer provider installed the
// global no-op provider makes that free.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(handler, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
