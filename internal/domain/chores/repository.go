package chores

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetUser(ctx context.Context, userID int64) (*UserRef, error)
	FindGroupMembers(ctx context.Context, groupID int64, usernames []string) ([]UserRef, error)
	MemberLoads(ctx context.Context, groupID int64) ([]MemberLoad, error)
	CreateChore(ctx context.Context, chore *Chore) error
	GetChore(ctx context.Context, choreID int64) (*Chore, error)
	MarkChoreCompleted(ctx context.Context, choreID int64, at time.Time) error
	ArchiveChore(ctx context.Context, choreID int64) error
	CreateAssignments(ctx context.Context, assignments []Assignment) error
	GetAssignment(ctx context.Context, assignmentID int64) (*Assignment, error)
	ListAssignments(ctx context.Context, choreID int64) ([]Assignment, error)
	ListAssigneeIDs(ctx context.Context, choreID int64) ([]int64, error)
	CountOpenAssignments(ctx context.Context, choreID int64) (int64, error)
	CompleteAssignment(ctx context.Context, assignmentID, userID int64, at time.Time) error
	ReassignAssignment(ctx context.Context, assignmentID, userID int64, at time.Time) error
	ListDueAssignments(ctx context.Context, groupID int64, from, to time.Time) ([]Reminder, error)
	ListGroupChores(ctx context.Context, groupID int64) ([]Chore, error)
	ListUserChores(ctx context.Context, userID int64, filter UserChoreFilter) ([]Chore, error)
}
