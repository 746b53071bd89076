package group

import "errors"

var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrGroupNameTaken    = errors.New("group name already in use")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrNotInGroup        = errors.New("user is not in a group")
	ErrForbidden         = errors.New("not a member of this group")
	ErrInvalidGroup      = errors.New("invalid group")
	ErrInvalidPeriod     = errors.New("period must be week or month")
)
