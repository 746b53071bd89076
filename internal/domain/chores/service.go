package chores

import (
	"context"
	"fmt"
	"sort"
	"time"

	userdomain "chores-app-go/internal/domain/user"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// CreateChore inserts the chore and one assignment per assignee. Every
// username must belong to the chore's group or nothing is written.
func (s *Service) CreateChore(ctx context.Context, actor userdomain.Identity, input CreateChoreInput) (*ChoreWithAssignees, error) {
	fields, err := normalizeChoreFields(input.Name, input.Description, input.DueDate, input.Recurrence)
	if err != nil {
		return nil, err
	}
	usernames := normalizeUsernames(input.Assignees)
	if len(usernames) == 0 {
		return nil, fmt.Errorf("%w: at least one assignee is required", ErrInvalidChore)
	}

	var result ChoreWithAssignees
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := requireMember(ctx, tx, actor.ID, input.GroupID); err != nil {
			return err
		}

		assigneeIDs, err := resolveAssignees(ctx, tx, input.GroupID, usernames)
		if err != nil {
			return err
		}

		chore := fields.chore(input.GroupID, actor.ID)
		if err := createWithAssignees(ctx, tx, &chore, assigneeIDs); err != nil {
			return err
		}

		result = ChoreWithAssignees{Chore: chore, AssigneeIDs: assigneeIDs}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AssignBalanced creates a chore for the N members with the fewest open
// chores. Equal loads are broken by the lower user id.
func (s *Service) AssignBalanced(ctx context.Context, actor userdomain.Identity, input AssignBalancedInput) (*BalancedAssignment, error) {
	fields, err := normalizeChoreFields(input.Name, input.Description, input.DueDate, input.Recurrence)
	if err != nil {
		return nil, err
	}
	if input.AssigneeCount < 1 {
		return nil, fmt.Errorf("%w: assignee count must be at least 1", ErrInvalidChore)
	}

	var result BalancedAssignment
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := requireMember(ctx, tx, actor.ID, input.GroupID); err != nil {
			return err
		}

		loads, err := tx.MemberLoads(ctx, input.GroupID)
		if err != nil {
			return err
		}
		if len(loads) == 0 {
			return ErrNoMembers
		}

		selected := leastBusy(loads, input.AssigneeCount)
		assigneeIDs := make([]int64, 0, len(selected))
		for _, member := range selected {
			assigneeIDs = append(assigneeIDs, member.UserID)
		}

		chore := fields.chore(input.GroupID, actor.ID)
		if err := createWithAssignees(ctx, tx, &chore, assigneeIDs); err != nil {
			return err
		}

		result = BalancedAssignment{Chore: chore, Selected: selected}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) CompleteChore(ctx context.Context, actor userdomain.Identity, choreID int64) (*Chore, error) {
	var result Chore
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		chore, err := tx.GetChore(ctx, choreID)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, tx, actor.ID, chore.GroupID); err != nil {
			return err
		}

		if !chore.Completed {
			now := s.now()
			if err := tx.MarkChoreCompleted(ctx, chore.ID, now); err != nil {
				return err
			}
			chore.Completed = true
			chore.CompletedAt = &now
		}

		result = *chore
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ArchiveChore is idempotent for chores that exist.
func (s *Service) ArchiveChore(ctx context.Context, actor userdomain.Identity, choreID int64) (*Chore, error) {
	var result Chore
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		chore, err := tx.GetChore(ctx, choreID)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, tx, actor.ID, chore.GroupID); err != nil {
			return err
		}

		if !chore.Archived {
			if err := tx.ArchiveChore(ctx, chore.ID); err != nil {
				return err
			}
			chore.Archived = true
		}

		result = *chore
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DuplicateChore copies a chore into a fresh open one. Unset overrides fall
// back to the source's due date, recurrence and current assignees.
func (s *Service) DuplicateChore(ctx context.Context, actor userdomain.Identity, choreID int64, input DuplicateChoreInput) (*ChoreWithAssignees, error) {
	if input.DueDate != nil && input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due_date is invalid", ErrInvalidChore)
	}
	if err := checkRecurrence(input.Recurrence); err != nil {
		return nil, err
	}

	var result ChoreWithAssignees
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		source, err := tx.GetChore(ctx, choreID)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, tx, actor.ID, source.GroupID); err != nil {
			return err
		}

		var assigneeIDs []int64
		if usernames := normalizeUsernames(input.Assignees); len(usernames) > 0 {
			assigneeIDs, err = resolveAssignees(ctx, tx, source.GroupID, usernames)
		} else {
			assigneeIDs, err = tx.ListAssigneeIDs(ctx, source.ID)
			assigneeIDs = uniqueIDs(assigneeIDs)
		}
		if err != nil {
			return err
		}
		if len(assigneeIDs) == 0 {
			return fmt.Errorf("%w: duplicate has no assignees", ErrInvalidChore)
		}

		copied := Chore{
			Name:              source.Name,
			Description:       source.Description,
			GroupID:           source.GroupID,
			DueDate:           source.DueDate,
			IsRecurring:       source.IsRecurring,
			RecurrencePattern: source.RecurrencePattern,
			CreatedBy:         &actor.ID,
		}
		if input.DueDate != nil {
			copied.DueDate = input.DueDate.UTC()
		}
		if input.Recurrence != nil {
			copied.RecurrencePattern, copied.IsRecurring = recurrence(input.Recurrence)
		}

		if err := createWithAssignees(ctx, tx, &copied, assigneeIDs); err != nil {
			return err
		}

		result = ChoreWithAssignees{Chore: copied, AssigneeIDs: assigneeIDs}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) ListGroupChores(ctx context.Context, groupID int64) ([]Chore, error) {
	return s.repo.ListGroupChores(ctx, groupID)
}

func (s *Service) ListUserChores(ctx context.Context, userID int64, filter UserChoreFilter) ([]Chore, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListUserChores(ctx, userID, filter)
}

func requireMember(ctx context.Context, tx Repository, userID, groupID int64) error {
	user, err := tx.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.GroupID == nil || *user.GroupID != groupID {
		return ErrForbidden
	}
	return nil
}

func resolveAssignees(ctx context.Context, tx Repository, groupID int64, usernames []string) ([]int64, error) {
	members, err := tx.FindGroupMembers(ctx, groupID, usernames)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int64, len(members))
	for _, member := range members {
		byName[member.Username] = member.ID
	}

	ids := make([]int64, 0, len(usernames))
	var missing []string
	for _, name := range usernames {
		id, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: not members of the group: %v", ErrInvalidChore, missing)
	}
	return uniqueIDs(ids), nil
}

func createWithAssignees(ctx context.Context, tx Repository, chore *Chore, assigneeIDs []int64) error {
	if err := tx.CreateChore(ctx, chore); err != nil {
		return err
	}

	assignments := make([]Assignment, 0, len(assigneeIDs))
	for _, userID := range assigneeIDs {
		assignments = append(assignments, Assignment{ChoreID: chore.ID, UserID: userID})
	}
	return tx.CreateAssignments(ctx, assignments)
}

func leastBusy(loads []MemberLoad, n int) []MemberLoad {
	ordered := make([]MemberLoad, len(loads))
	copy(ordered, loads)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].OpenCount != ordered[j].OpenCount {
			return ordered[i].OpenCount < ordered[j].OpenCount
		}
		return ordered[i].UserID < ordered[j].UserID
	})
	if n > len(ordered) {
		n = len(ordered)
	}
	return ordered[:n]
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
