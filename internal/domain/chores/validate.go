package chores

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxNameLength        = 50
	maxDescriptionLength = 200
	maxRecurrenceLength  = 50
)

type choreFields struct {
	name        string
	description string
	dueDate     time.Time
	recurrence  *string
	recurring   bool
}

func normalizeChoreFields(name, description string, dueDate time.Time, recurrencePattern *string) (choreFields, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if !utf8.ValidString(name) || !utf8.ValidString(description) {
		return choreFields{}, fmt.Errorf("%w: text must be valid UTF-8", ErrInvalidChore)
	}
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return choreFields{}, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidChore, maxNameLength)
	}
	if description == "" || utf8.RuneCountInString(description) > maxDescriptionLength {
		return choreFields{}, fmt.Errorf("%w: description must be 1-%d characters", ErrInvalidChore, maxDescriptionLength)
	}
	if dueDate.IsZero() {
		return choreFields{}, fmt.Errorf("%w: due_date is required", ErrInvalidChore)
	}
	if err := checkRecurrence(recurrencePattern); err != nil {
		return choreFields{}, err
	}

	pattern, recurring := recurrence(recurrencePattern)
	return choreFields{
		name:        name,
		description: description,
		dueDate:     dueDate.UTC(),
		recurrence:  pattern,
		recurring:   recurring,
	}, nil
}

func (f choreFields) chore(groupID, createdBy int64) Chore {
	return Chore{
		Name:              f.name,
		Description:       f.description,
		GroupID:           groupID,
		DueDate:           f.dueDate,
		IsRecurring:       f.recurring,
		RecurrencePattern: f.recurrence,
		CreatedBy:         &createdBy,
	}
}

func checkRecurrence(pattern *string) error {
	if pattern == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*pattern)
	if !utf8.ValidString(trimmed) {
		return fmt.Errorf("%w: recurrence must be valid UTF-8", ErrInvalidChore)
	}
	if utf8.RuneCountInString(trimmed) > maxRecurrenceLength {
		return fmt.Errorf("%w: recurrence must be at most %d characters", ErrInvalidChore, maxRecurrenceLength)
	}
	return nil
}

// recurrence treats a blank pattern as no recurrence. The text itself is
// stored as given and never interpreted.
func recurrence(pattern *string) (*string, bool) {
	if pattern == nil {
		return nil, false
	}
	trimmed := strings.TrimSpace(*pattern)
	if trimmed == "" {
		return nil, false
	}
	return &trimmed, true
}

func normalizeUsernames(usernames []string) []string {
	seen := make(map[string]struct{}, len(usernames))
	result := make([]string, 0, len(usernames))
	for _, name := range usernames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
