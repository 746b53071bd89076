package chores

import (
	"context"
	"errors"
	"time"

	choresdomain "chores-app-go/internal/domain/chores"
	userdomain "chores-app-go/internal/domain/user"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(choresdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetUser(ctx context.Context, userID int64) (*choresdomain.UserRef, error) {
	var user choresdomain.UserRef
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, username, group_id").
		Where("id = ?", userID).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) FindGroupMembers(ctx context.Context, groupID int64, usernames []string) ([]choresdomain.UserRef, error) {
	var users []choresdomain.UserRef
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("id, username, group_id").
		Where("group_id = ? AND username IN ?", groupID, usernames).
		Scan(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) MemberLoads(ctx context.Context, groupID int64) ([]choresdomain.MemberLoad, error) {
	query := `SELECT u.id AS user_id, u.username, COUNT(DISTINCT c.id) AS open_count
FROM users u
LEFT JOIN assignments a ON a.user_id = u.id
LEFT JOIN chores c ON c.id = a.chore_id AND c.completed = FALSE AND c.archived = FALSE
WHERE u.group_id = ?
GROUP BY u.id, u.username
ORDER BY open_count ASC, u.id ASC`

	var loads []choresdomain.MemberLoad
	if err := r.db.WithContext(ctx).Raw(query, groupID).Scan(&loads).Error; err != nil {
		return nil, err
	}
	return loads, nil
}

func (r *PostgresRepository) CreateChore(ctx context.Context, chore *choresdomain.Chore) error {
	return r.db.WithContext(ctx).Create(chore).Error
}

func (r *PostgresRepository) GetChore(ctx context.Context, choreID int64) (*choresdomain.Chore, error) {
	var chore choresdomain.Chore
	if err := r.db.WithContext(ctx).Where("id = ?", choreID).First(&chore).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, choresdomain.ErrChoreNotFound
		}
		return nil, err
	}
	return &chore, nil
}

// MarkChoreCompleted only touches chores still open so completed_at keeps the
// first completion time.
func (r *PostgresRepository) MarkChoreCompleted(ctx context.Context, choreID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&choresdomain.Chore{}).
		Where("id = ? AND completed = FALSE", choreID).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
		}).Error
}

func (r *PostgresRepository) ArchiveChore(ctx context.Context, choreID int64) error {
	return r.db.WithContext(ctx).
		Model(&choresdomain.Chore{}).
		Where("id = ?", choreID).
		Update("archived", true).Error
}

func (r *PostgresRepository) CreateAssignments(ctx context.Context, assignments []choresdomain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Create(&assignments).Error
	if isUniqueViolation(err) {
		return choresdomain.ErrAlreadyAssigned
	}
	return err
}

func (r *PostgresRepository) GetAssignment(ctx context.Context, assignmentID int64) (*choresdomain.Assignment, error) {
	var assignment choresdomain.Assignment
	if err := r.db.WithContext(ctx).Where("id = ?", assignmentID).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, choresdomain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *PostgresRepository) ListAssignments(ctx context.Context, choreID int64) ([]choresdomain.Assignment, error) {
	var assignments []choresdomain.Assignment
	if err := r.db.WithContext(ctx).
		Where("chore_id = ?", choreID).
		Order("id asc").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *PostgresRepository) ListAssigneeIDs(ctx context.Context, choreID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&choresdomain.Assignment{}).
		Where("chore_id = ?", choreID).
		Order("id asc").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) CountOpenAssignments(ctx context.Context, choreID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&choresdomain.Assignment{}).
		Where("chore_id = ? AND completed_by IS NULL", choreID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CompleteAssignment(ctx context.Context, assignmentID, userID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&choresdomain.Assignment{}).
		Where("id = ?", assignmentID).
		Updates(map[string]interface{}{
			"completed_by": userID,
			"updated_at":   at,
		}).Error
}

func (r *PostgresRepository) ReassignAssignment(ctx context.Context, assignmentID, userID int64, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&choresdomain.Assignment{}).
		Where("id = ?", assignmentID).
		Updates(map[string]interface{}{
			"user_id":    userID,
			"updated_at": at,
		}).Error
	if isUniqueViolation(err) {
		return choresdomain.ErrAlreadyAssigned
	}
	return err
}

func (r *PostgresRepository) ListDueAssignments(ctx context.Context, groupID int64, from, to time.Time) ([]choresdomain.Reminder, error) {
	query := `SELECT u.id AS user_id, u.username, u.email, c.id AS chore_id, c.name AS chore_name, c.due_date
FROM assignments a
JOIN chores c ON c.id = a.chore_id
JOIN users u ON u.id = a.user_id
WHERE c.group_id = ?
	AND c.completed = FALSE
	AND c.archived = FALSE
	AND c.due_date BETWEEN ? AND ?
ORDER BY c.due_date ASC, u.id ASC, c.id ASC`

	var reminders []choresdomain.Reminder
	if err := r.db.WithContext(ctx).Raw(query, groupID, from, to).Scan(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *PostgresRepository) ListGroupChores(ctx context.Context, groupID int64) ([]choresdomain.Chore, error) {
	var chores []choresdomain.Chore
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND archived = FALSE", groupID).
		Order("due_date asc, id asc").
		Find(&chores).Error; err != nil {
		return nil, err
	}
	return chores, nil
}

func (r *PostgresRepository) ListUserChores(ctx context.Context, userID int64, filter choresdomain.UserChoreFilter) ([]choresdomain.Chore, error) {
	query := r.db.WithContext(ctx).
		Where("archived = FALSE AND id IN (?)",
			r.db.Model(&choresdomain.Assignment{}).Select("chore_id").Where("user_id = ?", userID))
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.SortByDue {
		query = query.Order("due_date asc, id asc")
	} else {
		query = query.Order("id asc")
	}

	var chores []choresdomain.Chore
	if err := query.Find(&chores).Error; err != nil {
		return nil, err
	}
	return chores, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
