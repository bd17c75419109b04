// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package migration applies the SQL files under data/migrations with
golang-migrate.

The API server calls [RunUp] on startup. The albumctl migrate command uses a
[Runner] directly to roll back or inspect the version.
*/
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	_ "github.com/golang-migrate/migrate/v4/source/file"     // registers file://
)

// ErrDirty means a previous migration failed halfway and needs manual repair.
var ErrDirty = errors.New("migration: database is dirty")

// Runner wraps one golang-migrate instance. Close it when done.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// Open points a [Runner] at the migrations in dir and the database at dsn.
func Open(dsn, dir string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+dir, pgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}

	migrator.Log = slogAdapter{logger: logger}
	return &Runner{migrator: migrator, logger: logger}, nil
}

// Version returns the applied version, 0 for an empty database.
func (runner *Runner) Version() (uint, bool, error) {
	version, dirty, err := runner.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to read version: %w", err)
	}
	return version, dirty, nil
}

// Up applies every pending migration.
func (runner *Runner) Up() error {
	return runner.apply("up", runner.migrator.Up)
}

// Down rolls back steps migrations.
func (runner *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}
	return runner.apply("down", func() error { return runner.migrator.Steps(-steps) })
}

func (runner *Runner) apply(direction string, step func() error) error {
	from, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("%w at version %d", ErrDirty, from)
	}

	if err := step(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("migration_no_change", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: %s failed: %w", direction, err)
	}

	to, _, _ := runner.Version()
	runner.logger.Info("migration_applied",
		slog.String("direction", direction),
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// Close releases the source and database handles.
func (runner *Runner) Close() error {
	sourceErr, databaseErr := runner.migrator.Close()
	return errors.Join(sourceErr, databaseErr)
}

// RunUp opens a [Runner], applies pending migrations and closes it.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	runner, err := Open(dsn, dir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	return runner.Up()
}

// pgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the golang-migrate pgx driver registers. Other values pass through.
func pgx5DSN(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter routes golang-migrate's own messages to debug logs.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (a slogAdapter) Verbose() bool { return false }
