package handler

import (
	"net/http"
	"time"

	choresdomain "chores-app-go/internal/domain/chores"
	userdomain "chores-app-go/internal/domain/user"
	"chores-app-go/internal/transport/httpserver/middleware"
)

type createChoreRequest struct {
	GroupID     *int64   `json:"group_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Assignees   []string `json:"assignees"`
	Recurrence  *string  `json:"recurrence"`
}

type assignBalancedRequest struct {
	GroupID       *int64  `json:"group_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	DueDate       string  `json:"due_date"`
	Recurrence    *string `json:"recurrence"`
	AssigneeCount int     `json:"assignee_count"`
}

type duplicateChoreRequest struct {
	DueDate    *string  `json:"due_date"`
	Recurrence *string  `json:"recurrence"`
	Assignees  []string `json:"assignees"`
}

type remindersRequest struct {
	GroupID *int64 `json:"group_id"`
	Hours   int    `json:"hours"`
}

type balancedResponse struct {
	Chore    choreResponse      `json:"chore"`
	Selected []selectedResponse `json:"selected_users"`
}

type selectedResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	OpenCount int64  `json:"open_chores"`
}

func (h *Handlers) CreateChore(w http.ResponseWriter, r *http.Request) {
	var req createChoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	groupID, ok := targetGroup(req.GroupID, identity)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "group_id is required")
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.Chores.CreateChore(r.Context(), identity, choresdomain.CreateChoreInput{
		GroupID:     groupID,
		Name:        req.Name,
		Description: req.Description,
		DueDate:     dueDate,
		Assignees:   req.Assignees,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		h.writeDomainError(w, "chores.create: create chore failed", err, "user_id", identity.ID, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusCreated, toChoreResponse(created.Chore, created.AssigneeIDs))
}

func (h *Handlers) AssignBalanced(w http.ResponseWriter, r *http.Request) {
	var req assignBalancedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	groupID, ok := targetGroup(req.GroupID, identity)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "group_id is required")
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Chores.AssignBalanced(r.Context(), identity, choresdomain.AssignBalancedInput{
		GroupID:       groupID,
		Name:          req.Name,
		Description:   req.Description,
		DueDate:       dueDate,
		Recurrence:    req.Recurrence,
		AssigneeCount: req.AssigneeCount,
	})
	if err != nil {
		h.writeDomainError(w, "chores.assign_balanced: assign failed", err, "user_id", identity.ID, "group_id", groupID, "count", req.AssigneeCount)
		return
	}

	selected := make([]selectedResponse, 0, len(result.Selected))
	assigneeIDs := make([]int64, 0, len(result.Selected))
	for _, member := range result.Selected {
		selected = append(selected, selectedResponse{
			UserID:    member.UserID,
			Username:  member.Username,
			OpenCount: member.OpenCount,
		})
		assigneeIDs = append(assigneeIDs, member.UserID)
	}

	writeJSON(w, http.StatusCreated, balancedResponse{
		Chore:    toChoreResponse(result.Chore, assigneeIDs),
		Selected: selected,
	})
}

func (h *Handlers) CompleteChore(w http.ResponseWriter, r *http.Request) {
	identity, choreID, ok := h.choreRequest(w, r)
	if !ok {
		return
	}

	chore, err := h.Chores.CompleteChore(r.Context(), identity, choreID)
	if err != nil {
		h.writeDomainError(w, "chores.complete: complete chore failed", err, "user_id", identity.ID, "chore_id", choreID)
		return
	}

	writeJSON(w, http.StatusOK, toChoreResponse(*chore, nil))
}

func (h *Handlers) ArchiveChore(w http.ResponseWriter, r *http.Request) {
	identity, choreID, ok := h.choreRequest(w, r)
	if !ok {
		return
	}

	chore, err := h.Chores.ArchiveChore(r.Context(), identity, choreID)
	if err != nil {
		h.writeDomainError(w, "chores.archive: archive chore failed", err, "user_id", identity.ID, "chore_id", choreID)
		return
	}

	writeJSON(w, http.StatusOK, toChoreResponse(*chore, nil))
}

func (h *Handlers) DuplicateChore(w http.ResponseWriter, r *http.Request) {
	identity, choreID, ok := h.choreRequest(w, r)
	if !ok {
		return
	}

	var req duplicateChoreRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := choresdomain.DuplicateChoreInput{
		Recurrence: req.Recurrence,
		Assignees:  req.Assignees,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		input.DueDate = &dueDate
	}

	copied, err := h.Chores.DuplicateChore(r.Context(), identity, choreID, input)
	if err != nil {
		h.writeDomainError(w, "chores.duplicate: duplicate chore failed", err, "user_id", identity.ID, "chore_id", choreID)
		return
	}

	writeJSON(w, http.StatusCreated, toChoreResponse(copied.Chore, copied.AssigneeIDs))
}

// SendReminders only reports what is due; nothing is delivered.
func (h *Handlers) SendReminders(w http.ResponseWriter, r *http.Request) {
	var req remindersRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return
	}

	groupID, ok := targetGroup(req.GroupID, identity)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "group_id is required")
		return
	}
	if _, err := h.Groups.GetGroup(r.Context(), identity, groupID); err != nil {
		h.writeDomainError(w, "chores.reminders: access check failed", err, "user_id", identity.ID, "group_id", groupID)
		return
	}

	hours := req.Hours
	if hours == 0 {
		hours = h.reminderHours
	}

	reminders, err := h.Chores.Reminders(r.Context(), groupID, hours)
	if err != nil {
		h.writeDomainError(w, "chores.reminders: list reminders failed", err, "group_id", groupID, "hours", hours)
		return
	}

	response := make([]reminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		response = append(response, reminderResponse{
			UserID:        reminder.UserID,
			Username:      reminder.Username,
			Email:         reminder.Email,
			ChoreID:       reminder.ChoreID,
			ChoreName:     reminder.ChoreName,
			DueDate:       reminder.DueDate,
			HoursUntilDue: reminder.HoursUntilDue,
			Message:       reminder.Message,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"group_id":     groupID,
		"generated_at": time.Now().UTC(),
		"reminders":    response,
	})
}

func (h *Handlers) choreRequest(w http.ResponseWriter, r *http.Request) (userdomain.Identity, int64, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "missing identity")
		return userdomain.Identity{}, 0, false
	}

	choreID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return userdomain.Identity{}, 0, false
	}
	return identity, choreID, true
}

// targetGroup falls back to the caller's own group when the body names none.
func targetGroup(requested *int64, identity userdomain.Identity) (int64, bool) {
	if requested != nil && *requested > 0 {
		return *requested, true
	}
	if identity.GroupID != nil {
		return *identity.GroupID, true
	}
	return 0, false
}
