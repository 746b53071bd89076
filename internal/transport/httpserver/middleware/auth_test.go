package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	userdomain "chores-app-go/internal/domain/user"
	"chores-app-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	identities map[int64]userdomain.Identity
	err        error
}

func (f fakeResolver) Identify(ctx context.Context, id int64) (userdomain.Identity, error) {
	if f.err != nil {
		return userdomain.Identity{}, f.err
	}
	identity, ok := f.identities[id]
	if !ok {
		return userdomain.Identity{}, userdomain.ErrUserNotFound
	}
	return identity, nil
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAPIKey(t *testing.T) {
	h := NewAPIKey("secret")(http.HandlerFunc(okHandler))

	cases := []struct {
		name   string
		key    string
		status int
	}{
		{name: "missing", key: "", status: http.StatusForbidden},
		{name: "wrong", key: "nope", status: http.StatusForbidden},
		{name: "valid", key: "secret", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.key != "" {
				req.Header.Set(APIKeyHeader, tc.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestIdentityMiddleware(t *testing.T) {
	resolver := fakeResolver{identities: map[int64]userdomain.Identity{
		7: {ID: 7, Username: "alice"},
	}}
	auth := NewIdentityAuth(resolver, logger.NewNop())

	var seen userdomain.Identity
	h := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{name: "missing", header: "", status: http.StatusUnauthorized, code: "missing_identity"},
		{name: "not a number", header: "alice", status: http.StatusUnauthorized, code: "invalid_identity"},
		{name: "negative", header: "-3", status: http.StatusUnauthorized, code: "invalid_identity"},
		{name: "unknown", header: "99", status: http.StatusUnauthorized, code: "unknown_user"},
		{name: "known", header: "7", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(UserIDHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.code != "" {
				assert.Contains(t, rec.Body.String(), `"code":"`+tc.code+`"`)
			}
		})
	}
	assert.Equal(t, "alice", seen.Username)
}

func TestIdentityMiddlewareLookupFailure(t *testing.T) {
	auth := NewIdentityAuth(fakeResolver{err: errors.New("db down")}, logger.NewNop())
	h := auth.Middleware(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/admin/reset", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = req.WithContext(WithIdentity(req.Context(), userdomain.Identity{ID: 1}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = req.WithContext(WithIdentity(req.Context(), userdomain.Identity{ID: 1, IsAdmin: true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
