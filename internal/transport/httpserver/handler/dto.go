package handler

import (
	"time"

	choresdomain "chores-app-go/internal/domain/chores"
	groupdomain "chores-app-go/internal/domain/group"
	userdomain "chores-app-go/internal/domain/user"
)

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	GroupID  *int64 `json:"group_id"`
}

type groupResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

type memberResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type contributionResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Completed int64  `json:"completed"`
}

type summaryResponse struct {
	GroupID          int64                  `json:"group_id"`
	Period           string                 `json:"period"`
	From             time.Time              `json:"from"`
	To               time.Time              `json:"to"`
	ChoresCreated    int64                  `json:"chores_created"`
	ChoresCompleted  int64                  `json:"chores_completed"`
	CompletedLate    int64                  `json:"completed_late"`
	OverdueOpen      int64                  `json:"overdue_open"`
	Contributors     []contributionResponse `json:"contributors"`
	TopContributor   *contributionResponse  `json:"top_contributor"`
	LeastContributor *contributionResponse  `json:"least_contributor"`
}

type choreResponse struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	GroupID           int64      `json:"group_id"`
	DueDate           time.Time  `json:"due_date"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern"`
	CreatedBy         *int64     `json:"created_by"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completed_at"`
	Archived          bool       `json:"archived"`
	CreatedAt         time.Time  `json:"created_at"`
	AssigneeIDs       []int64    `json:"assignee_ids,omitempty"`
}

type assignmentResponse struct {
	ID          int64      `json:"id"`
	ChoreID     int64      `json:"chore_id"`
	UserID      int64      `json:"user_id"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedBy *int64     `json:"completed_by"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type reminderResponse struct {
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	ChoreID       int64     `json:"chore_id"`
	ChoreName     string    `json:"chore_name"`
	DueDate       time.Time `json:"due_date"`
	HoursUntilDue int       `json:"hours_until_due"`
	Message       string    `json:"message"`
}

func toUserResponse(user *userdomain.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		GroupID:  user.GroupID,
	}
}

func toGroupResponse(group *groupdomain.Group) groupResponse {
	return groupResponse{
		ID:         group.ID,
		Name:       group.Name,
		InviteCode: group.InviteCode,
		CreatedAt:  group.CreatedAt,
	}
}

func toContributionResponses(items []groupdomain.Contribution) []contributionResponse {
	result := make([]contributionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, contributionResponse(item))
	}
	return result
}

func toContributionPtr(item *groupdomain.Contribution) *contributionResponse {
	if item == nil {
		return nil
	}
	resp := contributionResponse(*item)
	return &resp
}

func toSummaryResponse(summary *groupdomain.Summary) summaryResponse {
	return summaryResponse{
		GroupID:          summary.GroupID,
		Period:           string(summary.Period),
		From:             summary.From,
		To:               summary.To,
		ChoresCreated:    summary.Counts.Created,
		ChoresCompleted:  summary.Counts.Completed,
		CompletedLate:    summary.Counts.Late,
		OverdueOpen:      summary.Counts.OverdueOpen,
		Contributors:     toContributionResponses(summary.Contributors),
		TopContributor:   toContributionPtr(summary.TopContributor),
		LeastContributor: toContributionPtr(summary.LeastContributor),
	}
}

func toChoreResponse(chore choresdomain.Chore, assigneeIDs []int64) choreResponse {
	return choreResponse{
		ID:                chore.ID,
		Name:              chore.Name,
		Description:       chore.Description,
		GroupID:           chore.GroupID,
		DueDate:           chore.DueDate,
		IsRecurring:       chore.IsRecurring,
		RecurrencePattern: chore.RecurrencePattern,
		CreatedBy:         chore.CreatedBy,
		Completed:         chore.Completed,
		CompletedAt:       chore.CompletedAt,
		Archived:          chore.Archived,
		CreatedAt:         chore.CreatedAt,
		AssigneeIDs:       assigneeIDs,
	}
}

func toChoreResponses(chores []choresdomain.Chore) []choreResponse {
	result := make([]choreResponse, 0, len(chores))
	for _, chore := range chores {
		result = append(result, toChoreResponse(chore, nil))
	}
	return result
}

func toAssignmentResponse(assignment choresdomain.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:          assignment.ID,
		ChoreID:     assignment.ChoreID,
		UserID:      assignment.UserID,
		AssignedAt:  assignment.AssignedAt,
		CompletedBy: assignment.CompletedBy,
		UpdatedAt:   assignment.UpdatedAt,
	}
}
