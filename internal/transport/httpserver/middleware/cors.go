package middleware

import (
	"net/http"
	"strings"
)

const (
	corsMethods = "GET,POST,PUT,PATCH,DELETE,OPTIONS"
	corsMaxAge  = "86400"
)

type corsPolicy struct {
	origins   map[string]struct{}
	wildcard  bool
	allowHdrs string
}

func newCORSPolicy(allowedOrigins []string) corsPolicy {
	policy := corsPolicy{
		origins:   make(map[string]struct{}, len(allowedOrigins)),
		allowHdrs: strings.Join([]string{"Content-Type", APIKeyHeader, UserIDHeader}, ","),
	}
	for _, origin := range allowedOrigins {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			policy.wildcard = true
		default:
			policy.origins[origin] = struct{}{}
		}
	}
	return policy
}

func (p corsPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p.wildcard {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

// NewCORS echoes allowed origins back and short-circuits preflight requests.
// "*" in the list allows any origin.
func NewCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); policy.allows(origin) {
				h := w.Header()
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", corsMethods)
				h.Set("Access-Control-Allow-Headers", policy.allowHdrs)
				h.Set("Access-Control-Max-Age", corsMaxAge)
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if preflight {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
