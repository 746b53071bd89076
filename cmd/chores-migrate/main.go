package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"chores-app-go/internal/config"
	"chores-app-go/internal/db"
	"chores-app-go/pkg/logger"
)

type options struct {
	down  bool
	steps int
}

type migrator struct {
	up       func(ctx context.Context, sqlDB *sql.DB) error
	rollback func(ctx context.Context, sqlDB *sql.DB) error
}

func main() {
	var opts options
	flag.BoolVar(&opts.down, "rollback", false, "revert migrations instead of applying them")
	flag.IntVar(&opts.steps, "steps", 1, "number of migrations to revert with -rollback")
	flag.Parse()

	log := logger.NewFromEnv()

	if err := run(context.Background(), opts, log); err != nil {
		log.Critical("migrate: failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	sqlDB, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	return apply(ctx, sqlDB, opts, migrator{up: db.MigrateSQL, rollback: db.Rollback}, log)
}

func apply(ctx context.Context, sqlDB *sql.DB, opts options, m migrator, log logger.Logger) error {
	if !opts.down {
		if err := m.up(ctx, sqlDB); err != nil {
			return err
		}
		log.Info("migrate: up to date")
		return nil
	}

	if opts.steps < 1 {
		return errors.New("steps must be positive")
	}
	for i := 0; i < opts.steps; i++ {
		if err := m.rollback(ctx, sqlDB); err != nil {
			return fmt.Errorf("rollback step %d: %w", i+1, err)
		}
	}
	log.Info("migrate: rolled back", "steps", opts.steps)
	return nil
}
