package handler

import (
	"errors"
	"net/http"

	choresdomain "chores-app-go/internal/domain/chores"
	groupdomain "chores-app-go/internal/domain/group"
	userdomain "chores-app-go/internal/domain/user"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var domainErrors = []errorMapping{
	{userdomain.ErrInvalidUser, http.StatusBadRequest, "invalid_request"},
	{groupdomain.ErrInvalidGroup, http.StatusBadRequest, "invalid_request"},
	{groupdomain.ErrInvalidPeriod, http.StatusBadRequest, "invalid_period"},
	{groupdomain.ErrInvalidInviteCode, http.StatusBadRequest, "invalid_invite_code"},
	{groupdomain.ErrNotInGroup, http.StatusBadRequest, "not_in_group"},
	{choresdomain.ErrInvalidChore, http.StatusBadRequest, "invalid_request"},
	{choresdomain.ErrNoMembers, http.StatusBadRequest, "no_members"},

	{groupdomain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{choresdomain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{choresdomain.ErrNotAssignee, http.StatusForbidden, "not_assignee"},

	{userdomain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{groupdomain.ErrGroupNotFound, http.StatusNotFound, "group_not_found"},
	{choresdomain.ErrChoreNotFound, http.StatusNotFound, "chore_not_found"},
	{choresdomain.ErrAssignmentNotFound, http.StatusNotFound, "assignment_not_found"},

	{userdomain.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{userdomain.ErrUsernameTaken, http.StatusConflict, "username_taken"},
	{groupdomain.ErrGroupNameTaken, http.StatusConflict, "group_name_taken"},
	{choresdomain.ErrAlreadyAssigned, http.StatusConflict, "already_assigned"},
}

func lookupError(err error) (errorMapping, bool) {
	for _, mapping := range domainErrors {
		if errors.Is(err, mapping.target) {
			return mapping, true
		}
	}
	return errorMapping{}, false
}

// writeDomainError logs known domain failures as business errors and
// everything else as internal.
func (h *Handlers) writeDomainError(w http.ResponseWriter, op string, err error, args ...any) {
	if mapping, ok := lookupError(err); ok {
		h.log.BusinessError(op, err, args...)
		writeError(w, mapping.status, mapping.code, err.Error())
		return
	}
	h.log.InternalError(op, err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
