package handler

import (
	"net/http"

	choresdomain "chores-app-go/internal/domain/chores"
	"chores-app-go/internal/transport/httpserver/middleware"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Username, req.Email)
	if err != nil {
		h.writeDomainError(w, "users.create: create user failed", err, "username", req.Username)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, "users.get: get user failed", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handlers) ListUserChores(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	userID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	completed, err := parseBoolParam(r.URL.Query().Get("completed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "completed must be a boolean")
		return
	}
	sortByDue, err := parseBoolParam(r.URL.Query().Get("sort_by_due"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "sort_by_due must be a boolean")
		return
	}

	filter := choresdomain.UserChoreFilter{Completed: completed}
	if sortByDue != nil {
		filter.SortByDue = *sortByDue
	}

	chores, err := h.Chores.ListUserChores(r.Context(), userID, filter)
	if err != nil {
		h.writeDomainError(w, "users.list_chores: list chores failed", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toChoreResponses(chores))
}
