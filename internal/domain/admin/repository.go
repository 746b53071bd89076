package admin

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	TruncateAll(ctx context.Context) error
	UserExists(ctx context.Context, userID int64) (bool, error)
	DeleteAssignmentsByUser(ctx context.Context, userID int64) (int64, error)
	ClearCompletedBy(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
}
