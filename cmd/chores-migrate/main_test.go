package main

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"chores-app-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMigrator struct {
	ups       int
	rollbacks int
	failAt    int
}

func (c *countingMigrator) migrator() migrator {
	return migrator{
		up: func(context.Context, *sql.DB) error {
			c.ups++
			return nil
		},
		rollback: func(context.Context, *sql.DB) error {
			c.rollbacks++
			if c.rollbacks == c.failAt {
				return errors.New("no migration to roll back")
			}
			return nil
		},
	}
}

func TestApplyRunsUpByDefault(t *testing.T) {
	counts := &countingMigrator{}

	require.NoError(t, apply(context.Background(), nil, options{steps: 1}, counts.migrator(), logger.NewNop()))
	assert.Equal(t, 1, counts.ups)
	assert.Zero(t, counts.rollbacks)
}

func TestApplyRollsBackRequestedSteps(t *testing.T) {
	counts := &countingMigrator{}

	require.NoError(t, apply(context.Background(), nil, options{down: true, steps: 3}, counts.migrator(), logger.NewNop()))
	assert.Zero(t, counts.ups)
	assert.Equal(t, 3, counts.rollbacks)
}

func TestApplyStopsOnRollbackError(t *testing.T) {
	counts := &countingMigrator{failAt: 2}

	err := apply(context.Background(), nil, options{down: true, steps: 5}, counts.migrator(), logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollback step 2")
	assert.Equal(t, 2, counts.rollbacks)
}

func TestApplyRejectsNonPositiveSteps(t *testing.T) {
	counts := &countingMigrator{}

	assert.Error(t, apply(context.Background(), nil, options{down: true}, counts.migrator(), logger.NewNop()))
	assert.Zero(t, counts.rollbacks)
}
