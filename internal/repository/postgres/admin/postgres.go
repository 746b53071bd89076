package admin

import (
	"context"

	admindomain "chores-app-go/internal/domain/admin"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(admindomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) TruncateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Exec("TRUNCATE TABLE assignments, chores, users, groups RESTART IDENTITY CASCADE").Error
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("users").Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) DeleteAssignmentsByUser(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Exec("DELETE FROM assignments WHERE user_id = ?", userID)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) ClearCompletedBy(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Exec("UPDATE assignments SET completed_by = NULL WHERE completed_by = ?", userID).Error
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM users WHERE id = ?", userID).Error
}
