package group

import (
	"context"
	"errors"
	"time"

	groupdomain "chores-app-go/internal/domain/group"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(groupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateGroup(ctx context.Context, group *groupdomain.Group) error {
	err := r.db.WithContext(ctx).Create(group).Error
	if isUniqueViolation(err) {
		return groupdomain.ErrGroupNameTaken
	}
	return err
}

func (r *PostgresRepository) GetGroupByID(ctx context.Context, groupID int64) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) GetGroupByName(ctx context.Context, name string) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) IsNameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&groupdomain.Group{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) SetUserGroup(ctx context.Context, userID int64, groupID *int64) error {
	result := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Update("group_id", groupID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, groupID int64) ([]groupdomain.Member, error) {
	var members []groupdomain.Member
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("id, username, email, is_admin").
		Where("group_id = ?", groupID).
		Order("id asc").
		Scan(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) CompletedChoresByMember(ctx context.Context, groupID int64) ([]groupdomain.Contribution, error) {
	query := `SELECT u.id AS user_id, u.username, COUNT(c.id) AS completed
FROM users u
LEFT JOIN assignments a ON a.user_id = u.id
LEFT JOIN chores c ON c.id = a.chore_id AND c.group_id = ? AND c.completed = TRUE AND c.archived = FALSE
WHERE u.group_id = ?
GROUP BY u.id, u.username
ORDER BY u.id`

	var rows []groupdomain.Contribution
	if err := r.db.WithContext(ctx).Raw(query, groupID, groupID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SummaryCounts ignores the window for overdue chores; those count as long as
// they are still open.
func (r *PostgresRepository) SummaryCounts(ctx context.Context, groupID int64, since, now time.Time) (groupdomain.SummaryCounts, error) {
	query := `SELECT
	COUNT(*) FILTER (WHERE c.created_at >= ?) AS created,
	COUNT(*) FILTER (WHERE c.completed AND c.completed_at >= ?) AS completed,
	COUNT(*) FILTER (WHERE c.completed AND c.completed_at >= ? AND c.completed_at > c.due_date) AS late,
	COUNT(*) FILTER (WHERE NOT c.completed AND c.due_date < ?) AS overdue_open
FROM chores c
WHERE c.group_id = ? AND c.archived = FALSE`

	var counts groupdomain.SummaryCounts
	if err := r.db.WithContext(ctx).Raw(query, since, since, since, now, groupID).Scan(&counts).Error; err != nil {
		return groupdomain.SummaryCounts{}, err
	}
	return counts, nil
}

func (r *PostgresRepository) ContributionsSince(ctx context.Context, groupID int64, since time.Time) ([]groupdomain.Contribution, error) {
	query := `SELECT u.id AS user_id, u.username, COUNT(a.id) AS completed
FROM users u
LEFT JOIN assignments a ON a.completed_by = u.id
	AND a.updated_at >= ?
	AND a.chore_id IN (SELECT id FROM chores WHERE group_id = ? AND archived = FALSE)
WHERE u.group_id = ?
GROUP BY u.id, u.username
ORDER BY u.id`

	var rows []groupdomain.Contribution
	if err := r.db.WithContext(ctx).Raw(query, since, groupID, groupID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
