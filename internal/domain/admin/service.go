package admin

import (
	"context"

	userdomain "chores-app-go/internal/domain/user"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResetDatabase empties every table and restarts the id sequences.
func (s *Service) ResetDatabase(ctx context.Context) error {
	return s.repo.TruncateAll(ctx)
}

type RemovedUser struct {
	UserID             int64
	AssignmentsRemoved int64
}

// RemoveUser drops the user's assignments before the user row. Chores they
// created stay, with no creator.
func (s *Service) RemoveUser(ctx context.Context, userID int64) (*RemovedUser, error) {
	if userID <= 0 {
		return nil, userdomain.ErrUserNotFound
	}

	var result RemovedUser
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return userdomain.ErrUserNotFound
		}

		removed, err := tx.DeleteAssignmentsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.ClearCompletedBy(ctx, userID); err != nil {
			return err
		}
		if err := tx.DeleteUser(ctx, userID); err != nil {
			return err
		}

		result = RemovedUser{UserID: userID, AssignmentsRemoved: removed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
