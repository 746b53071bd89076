package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	userdomain "chores-app-go/internal/domain/user"
	"chores-app-go/pkg/logger"
)

const (
	APIKeyHeader = "X-API-Key"
	UserIDHeader = "X-User-Id"
)

type contextKey int

const (
	identityKey contextKey = iota
)

type IdentityResolver interface {
	Identify(ctx context.Context, id int64) (userdomain.Identity, error)
}

// NewAPIKey rejects requests that do not carry the configured key.
func NewAPIKey(key string) func(http.Handler) http.Handler {
	expected := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get(APIKeyHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
				writeError(w, http.StatusForbidden, "invalid_api_key", "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type IdentityAuth struct {
	users IdentityResolver
	log   logger.Logger
}

func NewIdentityAuth(users IdentityResolver, log logger.Logger) *IdentityAuth {
	return &IdentityAuth{users: users, log: log}
}

// Middleware resolves X-User-Id into an Identity once per request. The id is
// taken at face value; it is not a credential.
func (a *IdentityAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing_identity", "missing "+UserIDHeader+" header")
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			writeError(w, http.StatusUnauthorized, "invalid_identity", "invalid "+UserIDHeader+" header")
			return
		}

		identity, err := a.users.Identify(r.Context(), userID)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserNotFound) {
				a.log.BusinessError("auth.identify: unknown user", err, "user_id", userID)
				writeError(w, http.StatusUnauthorized, "unknown_user", "unknown user")
				return
			}
			a.log.InternalError("auth.identify: lookup failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
			return
		}
		if !identity.IsAdmin {
			writeError(w, http.StatusForbidden, "admin_required", "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithIdentity(ctx context.Context, identity userdomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (userdomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(userdomain.Identity)
	if !ok || identity.ID == 0 {
		return userdomain.Identity{}, false
	}
	return identity, true
}
