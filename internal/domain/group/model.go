package group

import "time"

type Group struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"size:50;not null;uniqueIndex"`
	InviteCode string    `gorm:"size:10;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type Member struct {
	ID       int64  `gorm:"column:id"`
	Username string `gorm:"column:username"`
	Email    string `gorm:"column:email"`
	IsAdmin  bool   `gorm:"column:is_admin"`
}

// Contribution is a member's completed count over some window.
type Contribution struct {
	UserID    int64  `gorm:"column:user_id" json:"user_id"`
	Username  string `gorm:"column:username" json:"username"`
	Completed int64  `gorm:"column:completed" json:"completed"`
}

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

type SummaryCounts struct {
	Created     int64 `gorm:"column:created"`
	Completed   int64 `gorm:"column:completed"`
	Late        int64 `gorm:"column:late"`
	OverdueOpen int64 `gorm:"column:overdue_open"`
}

type Summary struct {
	GroupID          int64
	Period           Period
	From             time.Time
	To               time.Time
	Counts           SummaryCounts
	Contributors     []Contribution
	TopContributor   *Contribution
	LeastContributor *Contribution
}
