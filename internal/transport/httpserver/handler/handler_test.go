package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	choresdomain "chores-app-go/internal/domain/chores"
	groupdomain "chores-app-go/internal/domain/group"
	userdomain "chores-app-go/internal/domain/user"
	"chores-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	users []userdomain.User
}

func (r *memoryUserRepo) CreateUser(ctx context.Context, user *userdomain.User) error {
	user.ID = int64(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepo) GetUserByID(ctx context.Context, id int64) (*userdomain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := user
			return &copied, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (r *memoryUserRepo) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepo) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func newUserHandlers() *Handlers {
	users := userdomain.NewService(&memoryUserRepo{})
	return New(users, nil, nil, nil, 48, logger.NewNop())
}

func TestWriteDomainError(t *testing.T) {
	h := newUserHandlers()

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: name is required", choresdomain.ErrInvalidChore), http.StatusBadRequest, "invalid_request"},
		{groupdomain.ErrInvalidInviteCode, http.StatusBadRequest, "invalid_invite_code"},
		{choresdomain.ErrNoMembers, http.StatusBadRequest, "no_members"},
		{choresdomain.ErrNotAssignee, http.StatusForbidden, "not_assignee"},
		{groupdomain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{choresdomain.ErrChoreNotFound, http.StatusNotFound, "chore_not_found"},
		{userdomain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{userdomain.ErrEmailTaken, http.StatusConflict, "email_taken"},
		{groupdomain.ErrGroupNameTaken, http.StatusConflict, "group_name_taken"},
		{choresdomain.ErrAlreadyAssigned, http.StatusConflict, "already_assigned"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.writeDomainError(rec, "test", tc.err)

		var body errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, tc.code, body.Error.Code, tc.err.Error())
	}
}

func TestWriteDomainErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	newUserHandlers().writeDomainError(rec, "test", errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUserHandler(t *testing.T) {
	h := newUserHandlers()

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.CreateUser(rec, req)
		return rec
	}

	rec := post(`{"username":"alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.IsAdmin)
	assert.Nil(t, created.GroupID)

	assert.Equal(t, http.StatusConflict, post(`{"username":"alice2","email":"alice@example.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"username":"","email":"x@example.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"username":`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"username":"bob","email":"b@example.com","is_admin":true}`).Code)
}

func TestGetUserHandler(t *testing.T) {
	h := newUserHandlers()
	_, err := h.Users.CreateUser(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/users/{id}", h.GetUser)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseDueDate(t *testing.T) {
	got, err := parseDueDate("2024-05-10T09:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 7, 30, 0, 0, time.UTC), got)

	got, err = parseDueDate("2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDueDate("")
	assert.Error(t, err)
	_, err = parseDueDate("tomorrow")
	assert.Error(t, err)
}

func TestTargetGroup(t *testing.T) {
	own := int64(4)
	other := int64(9)

	id, ok := targetGroup(&other, userdomain.Identity{ID: 1, GroupID: &own})
	assert.True(t, ok)
	assert.Equal(t, other, id)

	id, ok = targetGroup(nil, userdomain.Identity{ID: 1, GroupID: &own})
	assert.True(t, ok)
	assert.Equal(t, own, id)

	_, ok = targetGroup(nil, userdomain.Identity{ID: 1})
	assert.False(t, ok)
}

func TestDecodeJSONBodies(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var dst payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"} {"name":"b"}`))
	assert.ErrorIs(t, decodeJSON(req, &dst), errTrailingData)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, decodeOptionalJSON(req, &dst))
	assert.Empty(t, dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, decodeOptionalJSON(req, &dst))
}
