package group

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateGroup(ctx context.Context, group *Group) error
	GetGroupByID(ctx context.Context, groupID int64) (*Group, error)
	GetGroupByName(ctx context.Context, name string) (*Group, error)
	IsNameTaken(ctx context.Context, name string) (bool, error)
	SetUserGroup(ctx context.Context, userID int64, groupID *int64) error
	ListMembers(ctx context.Context, groupID int64) ([]Member, error)
	CompletedChoresByMember(ctx context.Context, groupID int64) ([]Contribution, error)
	SummaryCounts(ctx context.Context, groupID int64, since, now time.Time) (SummaryCounts, error)
	ContributionsSince(ctx context.Context, groupID int64, since time.Time) ([]Contribution, error)
}
