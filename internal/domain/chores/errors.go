package chores

import "errors"

var (
	ErrChoreNotFound      = errors.New("chore not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrForbidden          = errors.New("chore belongs to another group")
	ErrNotAssignee        = errors.New("assignment belongs to another user")
	ErrInvalidChore       = errors.New("invalid chore")
	ErrNoMembers          = errors.New("group has no members")
	ErrAlreadyAssigned    = errors.New("user is already assigned to the chore")
)
