package handler

import (
	"net/http"

	groupdomain "chores-app-go/internal/domain/group"
	userdomain "chores-app-go/internal/domain/user"
	"chores-app-go/internal/transport/httpserver/middleware"
)

type createGroupRequest struct {
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
}

type joinGroupRequest struct {
	GroupName  string `json:"group_name"`
	InviteCode string `json:"invite_code"`
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	group, err := h.Groups.CreateGroup(r.Context(), identity, req.Name, req.InviteCode)
	if err != nil {
		h.writeDomainError(w, "groups.create: create group failed", err, "user_id", identity.ID, "name", req.Name)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (h *Handlers) JoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	group, err := h.Groups.JoinGroup(r.Context(), identity, req.GroupName, req.InviteCode)
	if err != nil {
		h.writeDomainError(w, "groups.join: join group failed", err, "user_id", identity.ID, "group_name", req.GroupName)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (h *Handlers) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	if err := h.Groups.LeaveGroup(r.Context(), identity); err != nil {
		h.writeDomainError(w, "groups.leave: leave group failed", err, "user_id", identity.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListGroupChores(w http.ResponseWriter, r *http.Request) {
	identity, groupID, ok := h.groupRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.Groups.GetGroup(r.Context(), identity, groupID); err != nil {
		h.writeDomainError(w, "groups.chores: access check failed", err, "user_id", identity.ID, "group_id", groupID)
		return
	}

	chores, err := h.Chores.ListGroupChores(r.Context(), groupID)
	if err != nil {
		h.writeDomainError(w, "groups.chores: list chores failed", err, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toChoreResponses(chores))
}

func (h *Handlers) ListGroupMembers(w http.ResponseWriter, r *http.Request) {
	identity, groupID, ok := h.groupRequest(w, r)
	if !ok {
		return
	}

	members, err := h.Groups.ListMembers(r.Context(), identity, groupID)
	if err != nil {
		h.writeDomainError(w, "groups.members: list members failed", err, "user_id", identity.ID, "group_id", groupID)
		return
	}

	response := make([]memberResponse, 0, len(members))
	for _, member := range members {
		response = append(response, memberResponse{
			ID:       member.ID,
			Username: member.Username,
			Email:    member.Email,
			IsAdmin:  member.IsAdmin,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GroupStats(w http.ResponseWriter, r *http.Request) {
	identity, groupID, ok := h.groupRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.Groups.Stats(r.Context(), identity, groupID)
	if err != nil {
		h.writeDomainError(w, "groups.stats: stats failed", err, "user_id", identity.ID, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toContributionResponses(stats))
}

func (h *Handlers) GroupSummary(w http.ResponseWriter, r *http.Request) {
	identity, groupID, ok := h.groupRequest(w, r)
	if !ok {
		return
	}

	period, err := groupdomain.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_period", err.Error())
		return
	}

	summary, err := h.Groups.Summary(r.Context(), identity, groupID, period)
	if err != nil {
		h.writeDomainError(w, "groups.summary: summary failed", err, "user_id", identity.ID, "group_id", groupID, "period", period)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (h *Handlers) groupRequest(w http.ResponseWriter, r *http.Request) (identity userdomain.Identity, groupID int64, ok bool) {
	identity, ok = middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return identity, 0, false
	}

	groupID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return identity, 0, false
	}
	return identity, groupID, true
}
