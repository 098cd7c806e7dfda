package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS optimization_reports (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		depot JSONB NOT NULL,
		total_deliveries INTEGER NOT NULL,
		total_routes INTEGER NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		total_time_minutes INTEGER NOT NULL,
		total_cost DOUBLE PRECISION,
		report JSONB NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimization_reports_created_at
	ON optimization_reports (created_at DESC);
	`

	statements := []string{
		createReportsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
