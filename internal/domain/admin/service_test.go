package admin

import (
	"context"
	"errors"
	"testing"

	userdomain "chores-app-go/internal/domain/user"
)

type fakeAssignment struct {
	userID      int64
	completedBy *int64
}

type fakeAdminRepo struct {
	users       map[int64]bool
	assignments []fakeAssignment
	calls       []string
	truncated   bool
}

func (r *fakeAdminRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeAdminRepo) TruncateAll(ctx context.Context) error {
	r.truncated = true
	r.users = map[int64]bool{}
	r.assignments = nil
	return nil
}

func (r *fakeAdminRepo) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.users[userID], nil
}

func (r *fakeAdminRepo) DeleteAssignmentsByUser(ctx context.Context, userID int64) (int64, error) {
	r.calls = append(r.calls, "assignments")
	kept := r.assignments[:0]
	var removed int64
	for _, assignment := range r.assignments {
		if assignment.userID == userID {
			removed++
			continue
		}
		kept = append(kept, assignment)
	}
	r.assignments = kept
	return removed, nil
}

func (r *fakeAdminRepo) ClearCompletedBy(ctx context.Context, userID int64) error {
	r.calls = append(r.calls, "completed_by")
	for i := range r.assignments {
		if r.assignments[i].completedBy != nil && *r.assignments[i].completedBy == userID {
			r.assignments[i].completedBy = nil
		}
	}
	return nil
}

func (r *fakeAdminRepo) DeleteUser(ctx context.Context, userID int64) error {
	r.calls = append(r.calls, "user")
	delete(r.users, userID)
	return nil
}

func TestRemoveUserDeletesAssignmentsFirst(t *testing.T) {
	repo := &fakeAdminRepo{
		users: map[int64]bool{1: true, 2: true},
		assignments: []fakeAssignment{
			{userID: 1}, {userID: 1}, {userID: 1}, {userID: 2},
		},
	}
	svc := NewService(repo)

	removed, err := svc.RemoveUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if removed.AssignmentsRemoved != 3 {
		t.Fatalf("expected 3 assignments removed, got %d", removed.AssignmentsRemoved)
	}
	if len(repo.assignments) != 1 || repo.assignments[0].userID != 2 {
		t.Fatalf("expected only bob's assignment left, got %+v", repo.assignments)
	}
	if len(repo.calls) != 3 || repo.calls[0] != "assignments" || repo.calls[2] != "user" {
		t.Fatalf("unexpected call order %v", repo.calls)
	}

	if _, err := svc.RemoveUser(context.Background(), 1); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second removal, got %v", err)
	}
}

func TestRemoveUserClearsCompletedBy(t *testing.T) {
	one := int64(1)
	repo := &fakeAdminRepo{
		users:       map[int64]bool{1: true, 2: true},
		assignments: []fakeAssignment{{userID: 2, completedBy: &one}},
	}
	svc := NewService(repo)

	if _, err := svc.RemoveUser(context.Background(), 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.assignments[0].completedBy != nil {
		t.Fatalf("expected completed_by cleared")
	}
}

func TestRemoveUserUnknown(t *testing.T) {
	svc := NewService(&fakeAdminRepo{users: map[int64]bool{}})

	if _, err := svc.RemoveUser(context.Background(), 7); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.RemoveUser(context.Background(), 0); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for zero id, got %v", err)
	}
}

func TestResetDatabase(t *testing.T) {
	repo := &fakeAdminRepo{users: map[int64]bool{1: true}}
	svc := NewService(repo)

	if err := svc.ResetDatabase(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !repo.truncated || len(repo.users) != 0 {
		t.Fatalf("expected tables truncated")
	}
}
