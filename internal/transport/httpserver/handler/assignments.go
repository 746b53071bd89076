package handler

import (
	"net/http"
	"strings"

	"chores-app-go/internal/transport/httpserver/middleware"
)

type createAssignmentRequest struct {
	ChoreID int64 `json:"chore_id"`
	UserID  int64 `json:"user_id"`
}

type reassignRequest struct {
	AssignmentID int64  `json:"assignment_id"`
	Username     string `json:"username"`
}

type completeAssignmentResponse struct {
	Assignment     assignmentResponse `json:"assignment"`
	ChoreCompleted bool               `json:"chore_completed"`
}

func (h *Handlers) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.ChoreID <= 0 || req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "chore_id and user_id are required")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	assignment, err := h.Chores.CreateAssignment(r.Context(), identity, req.ChoreID, req.UserID)
	if err != nil {
		h.writeDomainError(w, "assignments.create: create assignment failed", err, "actor_id", identity.ID, "chore_id", req.ChoreID, "user_id", req.UserID)
		return
	}

	writeJSON(w, http.StatusCreated, toAssignmentResponse(*assignment))
}

func (h *Handlers) CompleteAssignment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	assignmentID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Chores.CompleteAssignment(r.Context(), identity, assignmentID)
	if err != nil {
		h.writeDomainError(w, "assignments.complete: complete assignment failed", err, "user_id", identity.ID, "assignment_id", assignmentID)
		return
	}

	writeJSON(w, http.StatusOK, completeAssignmentResponse{
		Assignment:     toAssignmentResponse(result.Assignment),
		ChoreCompleted: result.ChoreCompleted,
	})
}

func (h *Handlers) Reassign(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.AssignmentID <= 0 || req.Username == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "assignment_id and username are required")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	assignment, err := h.Chores.Reassign(r.Context(), identity, req.AssignmentID, req.Username)
	if err != nil {
		h.writeDomainError(w, "assignments.reassign: reassign failed", err, "user_id", identity.ID, "assignment_id", req.AssignmentID, "username", req.Username)
		return
	}

	writeJSON(w, http.StatusOK, toAssignmentResponse(*assignment))
}

func (h *Handlers) ListChoreAssignments(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	choreID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	assignments, err := h.Chores.ListChoreAssignments(r.Context(), identity, choreID)
	if err != nil {
		h.writeDomainError(w, "assignments.list: list assignments failed", err, "user_id", identity.ID, "chore_id", choreID)
		return
	}

	result := make([]assignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		result = append(result, toAssignmentResponse(assignment))
	}
	writeJSON(w, http.StatusOK, result)
}
