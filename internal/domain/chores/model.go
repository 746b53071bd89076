package chores

import "time"

type Chore struct {
	ID                int64     `gorm:"primaryKey"`
	Name              string    `gorm:"size:50;not null"`
	Description       string    `gorm:"size:200;not null"`
	GroupID           int64     `gorm:"not null;index"`
	DueDate           time.Time `gorm:"not null"`
	IsRecurring       bool      `gorm:"not null;default:false"`
	RecurrencePattern *string   `gorm:"size:50"`
	CreatedBy         *int64
	Completed         bool `gorm:"not null;default:false"`
	CompletedAt       *time.Time
	Archived          bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

type Assignment struct {
	ID          int64     `gorm:"primaryKey"`
	ChoreID     int64     `gorm:"not null;index"`
	UserID      int64     `gorm:"not null;index"`
	AssignedAt  time.Time `gorm:"autoCreateTime"`
	CompletedBy *int64
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

// UserRef is the slice of a user row the chore workflows need.
type UserRef struct {
	ID       int64  `gorm:"column:id"`
	Username string `gorm:"column:username"`
	GroupID  *int64 `gorm:"column:group_id"`
}

// MemberLoad is a group member with the number of open, unarchived chores
// currently assigned to them.
type MemberLoad struct {
	UserID    int64  `gorm:"column:user_id"`
	Username  string `gorm:"column:username"`
	OpenCount int64  `gorm:"column:open_count"`
}

type Reminder struct {
	UserID        int64     `gorm:"column:user_id"`
	Username      string    `gorm:"column:username"`
	Email         string    `gorm:"column:email"`
	ChoreID       int64     `gorm:"column:chore_id"`
	ChoreName     string    `gorm:"column:chore_name"`
	DueDate       time.Time `gorm:"column:due_date"`
	HoursUntilDue int       `gorm:"-"`
	Message       string    `gorm:"-"`
}

type CreateChoreInput struct {
	GroupID     int64
	Name        string
	Description string
	DueDate     time.Time
	Assignees   []string
	Recurrence  *string
}

type AssignBalancedInput struct {
	GroupID       int64
	Name          string
	Description   string
	DueDate       time.Time
	Recurrence    *string
	AssigneeCount int
}

type DuplicateChoreInput struct {
	DueDate    *time.Time
	Recurrence *string
	Assignees  []string
}

type UserChoreFilter struct {
	Completed *bool
	SortByDue bool
}

// ChoreWithAssignees is a chore together with the user ids linked to it.
type ChoreWithAssignees struct {
	Chore       Chore
	AssigneeIDs []int64
}

type BalancedAssignment struct {
	Chore    Chore
	Selected []MemberLoad
}

type AssignmentCompletion struct {
	Assignment     Assignment
	ChoreCompleted bool
}
