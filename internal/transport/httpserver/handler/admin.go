package handler

import "net/http"

type removeUserResponse struct {
	UserID             int64 `json:"user_id"`
	AssignmentsRemoved int64 `json:"assignments_removed"`
}

func (h *Handlers) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.ResetDatabase(r.Context()); err != nil {
		h.writeDomainError(w, "admin.reset: reset failed", err)
		return
	}
	h.Groups.ForgetGroups()

	h.log.Warn("admin.reset: database truncated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handlers) RemoveUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	removed, err := h.Admin.RemoveUser(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, "admin.remove_user: remove failed", err, "user_id", userID)
		return
	}

	h.log.Info("admin.remove_user: user removed", "user_id", userID, "assignments_removed", removed.AssignmentsRemoved)
	writeJSON(w, http.StatusOK, removeUserResponse{
		UserID:             removed.UserID,
		AssignmentsRemoved: removed.AssignmentsRemoved,
	})
}
