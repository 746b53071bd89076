package httpserver

import (
	"net/http"
	"time"

	"chores-app-go/internal/config"
	"chores-app-go/internal/transport/httpserver/handler"
	authmw "chores-app-go/internal/transport/httpserver/middleware"
	"chores-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the optional collaborators of the router. Nil Metrics or
// Limiter switches that middleware off.
type Options struct {
	Identity authmw.IdentityResolver
	Metrics  *authmw.Metrics
	Gatherer prometheus.Gatherer
	Limiter  authmw.Limiter
}

func NewRouter(cfg config.Config, handlers *handler.Handlers, opts Options, log logger.Logger) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.NewRequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(timeout))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Get("/health", handlers.Health)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	identity := authmw.NewIdentityAuth(opts.Identity, log)

	// Identified routes are limited after identity resolution so the key is
	// the verified user, not a header the client picked.
	var rateLimit []func(http.Handler) http.Handler
	if opts.Limiter != nil {
		rateLimit = append(rateLimit, authmw.NewRateLimit(opts.Limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, log))
	}

	r.Group(func(r chi.Router) {
		r.Use(authmw.NewAPIKey(cfg.APIKey))

		r.With(rateLimit...).Post("/users/", handlers.CreateUser)

		r.Group(func(r chi.Router) {
			r.Use(identity.Middleware)
			r.Use(rateLimit...)

			r.Get("/users/{id}", handlers.GetUser)
			r.Get("/users/{id}/chores", handlers.ListUserChores)

			r.Post("/groups/create", handlers.CreateGroup)
			r.Post("/groups/join", handlers.JoinGroup)
			r.Post("/groups/leave", handlers.LeaveGroup)
			r.Get("/groups/{id}/chores", handlers.ListGroupChores)
			r.Get("/groups/{id}/stats", handlers.GroupStats)
			r.Get("/groups/{id}/members", handlers.ListGroupMembers)
			r.Get("/groups/{id}/summary", handlers.GroupSummary)

			r.Post("/chores/", handlers.CreateChore)
			r.Post("/chores/assign-balanced", handlers.AssignBalanced)
			r.Post("/chores/reminders/send", handlers.SendReminders)
			r.Patch("/chores/{id}/complete", handlers.CompleteChore)
			r.Patch("/chores/{id}/archive", handlers.ArchiveChore)
			r.Post("/chores/{id}/duplicate", handlers.DuplicateChore)
			r.Get("/chores/{id}/assignments", handlers.ListChoreAssignments)

			r.Post("/assignments/", handlers.CreateAssignment)
			r.Patch("/assignments/{id}/complete", handlers.CompleteAssignment)
			r.Put("/assignments/reassign", handlers.Reassign)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAdmin)

				r.Post("/admin/reset", handlers.ResetDatabase)
				r.Delete("/admin/remove_user/{id}", handlers.RemoveUser)
			})
		})
	})

	return r
}
