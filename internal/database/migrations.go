package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed migrations/001_init_schema.sql
var migrationSQL string

// RunMigrations creates the schema and seeds the initial assets when the
// store is absent. An existing assets table means the database is already
// bootstrapped and nothing runs.
func RunMigrations(ctx context.Context, db *pgxpool.Pool, logger zerolog.Logger) error {
	var exists bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'assets'
		)
	`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if migrations needed: %w", err)
	}

	if exists {
		logger.Info().Msg("database already migrated, skipping")
		return nil
	}

	logger.Info().Msg("database is empty, running migrations")

	if _, err := db.Exec(ctx, migrationSQL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database migrations completed")
	return nil
}
