package chores

import (
	"context"
	"fmt"
	"strings"

	userdomain "chores-app-go/internal/domain/user"
)

// CreateAssignment links a member of the chore's group to the chore. A chore
// that is already completed stays completed.
func (s *Service) CreateAssignment(ctx context.Context, actor userdomain.Identity, choreID, userID int64) (*Assignment, error) {
	var result Assignment
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		chore, err := tx.GetChore(ctx, choreID)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, tx, actor.ID, chore.GroupID); err != nil {
			return err
		}
		if chore.Archived {
			return fmt.Errorf("%w: chore is archived", ErrInvalidChore)
		}

		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user.GroupID == nil || *user.GroupID != chore.GroupID {
			return fmt.Errorf("%w: user %d is not a member of the chore's group", ErrInvalidChore, userID)
		}
		if err := requireUnassigned(ctx, tx, chore.ID, user.ID); err != nil {
			return err
		}

		assignments := []Assignment{{ChoreID: chore.ID, UserID: user.ID}}
		if err := tx.CreateAssignments(ctx, assignments); err != nil {
			return err
		}

		result = assignments[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CompleteAssignment records the actor as having done their part. The chore
// flips to completed once no assignment is left open. The check reads then
// writes without row locks, so two concurrent completions can both see an
// open sibling. Completing an already completed assignment writes nothing and
// keeps the original updated_at.
func (s *Service) CompleteAssignment(ctx context.Context, actor userdomain.Identity, assignmentID int64) (*AssignmentCompletion, error) {
	var result AssignmentCompletion
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		assignment, err := tx.GetAssignment(ctx, assignmentID)
		if err != nil {
			return err
		}
		if assignment.UserID != actor.ID {
			return ErrNotAssignee
		}
		if assignment.CompletedBy != nil {
			chore, err := tx.GetChore(ctx, assignment.ChoreID)
			if err != nil {
				return err
			}
			result.Assignment = *assignment
			result.ChoreCompleted = chore.Completed
			return nil
		}

		now := s.now()
		if err := tx.CompleteAssignment(ctx, assignment.ID, actor.ID, now); err != nil {
			return err
		}
		assignment.CompletedBy = &actor.ID
		assignment.UpdatedAt = &now

		open, err := tx.CountOpenAssignments(ctx, assignment.ChoreID)
		if err != nil {
			return err
		}
		if open == 0 {
			if err := tx.MarkChoreCompleted(ctx, assignment.ChoreID, now); err != nil {
				return err
			}
			result.ChoreCompleted = true
		}

		result.Assignment = *assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Reassign moves an open assignment to another member of the chore's group.
// Moving it to its current holder is a no-op; moving it to someone already
// assigned to the chore fails with ErrAlreadyAssigned.
func (s *Service) Reassign(ctx context.Context, actor userdomain.Identity, assignmentID int64, username string) (*Assignment, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidChore)
	}

	var result Assignment
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		assignment, err := tx.GetAssignment(ctx, assignmentID)
		if err != nil {
			return err
		}
		chore, err := tx.GetChore(ctx, assignment.ChoreID)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, tx, actor.ID, chore.GroupID); err != nil {
			return err
		}
		if assignment.CompletedBy != nil {
			return fmt.Errorf("%w: completed assignments cannot be reassigned", ErrInvalidChore)
		}

		ids, err := resolveAssignees(ctx, tx, chore.GroupID, []string{username})
		if err != nil {
			return err
		}

		if ids[0] == assignment.UserID {
			result = *assignment
			return nil
		}
		if err := requireUnassigned(ctx, tx, chore.ID, ids[0]); err != nil {
			return err
		}

		now := s.now()
		if err := tx.ReassignAssignment(ctx, assignment.ID, ids[0], now); err != nil {
			return err
		}
		assignment.UserID = ids[0]
		assignment.UpdatedAt = &now

		result = *assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListChoreAssignments returns every assignment row of a chore, open or not.
func (s *Service) ListChoreAssignments(ctx context.Context, actor userdomain.Identity, choreID int64) ([]Assignment, error) {
	chore, err := s.repo.GetChore(ctx, choreID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.repo, actor.ID, chore.GroupID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignments(ctx, chore.ID)
}

func requireUnassigned(ctx context.Context, tx Repository, choreID, userID int64) error {
	assignees, err := tx.ListAssigneeIDs(ctx, choreID)
	if err != nil {
		return err
	}
	for _, id := range assignees {
		if id == userID {
			return fmt.Errorf("%w: user %d", ErrAlreadyAssigned, userID)
		}
	}
	return nil
}
