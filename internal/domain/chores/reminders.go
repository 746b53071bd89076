package chores

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultReminderHours = 48
	maxReminderHours     = 24 * 31
)

// Reminders lists every (assignee, chore) pair due within the next hours. It
// only reads; nothing is sent.
func (s *Service) Reminders(ctx context.Context, groupID int64, hours int) ([]Reminder, error) {
	if hours == 0 {
		hours = DefaultReminderHours
	}
	if hours < 0 || hours > maxReminderHours {
		return nil, fmt.Errorf("%w: hours must be between 1 and %d", ErrInvalidChore, maxReminderHours)
	}

	now := s.now()
	reminders, err := s.repo.ListDueAssignments(ctx, groupID, now, now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		return nil, err
	}

	for i := range reminders {
		left := int(reminders[i].DueDate.Sub(now).Hours())
		reminders[i].HoursUntilDue = left
		reminders[i].Message = reminderMessage(reminders[i].Username, reminders[i].ChoreName, left)
	}
	return reminders, nil
}

func reminderMessage(username, chore string, hours int) string {
	switch {
	case hours < 1:
		return fmt.Sprintf("%s, %q is due within the hour", username, chore)
	case hours == 1:
		return fmt.Sprintf("%s, %q is due in 1 hour", username, chore)
	default:
		return fmt.Sprintf("%s, %q is due in %d hours", username, chore, hours)
	}
}
