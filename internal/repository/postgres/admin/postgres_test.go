package admin

import (
	"context"
	"regexp"
	"testing"

	admindomain "chores-app-go/internal/domain/admin"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewPostgres(db), mock
}

func TestTruncateAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE assignments, chores, users, groups RESTART IDENTITY CASCADE")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.TruncateAll(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveUserRunsInOneTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE assignments SET completed_by = NULL WHERE completed_by = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := admindomain.NewService(repo).RemoveUser(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(3), removed.AssignmentsRemoved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveUserRollsBackWhenMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := admindomain.NewService(repo).RemoveUser(context.Background(), 8)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
