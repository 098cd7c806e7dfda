package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// Postgres-backed implementation of the ReportRepository port. The full
// report is stored as JSONB next to denormalized summary columns used for
// listing.
type PostgresReportRepository struct{ DB *sql.DB }

func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: db}
}

func (r *PostgresReportRepository) SaveReport(ctx context.Context, entry domain.HistoryEntry) error {
	if r.DB == nil {
		return errors.New("postgres report repository: DB is nil")
	}

	depot, err := json.Marshal(entry.Depot)
	if err != nil {
		return fmt.Errorf("save report: encode depot: %w", err)
	}
	report, err := json.Marshal(entry.Report)
	if err != nil {
		return fmt.Errorf("save report: encode report: %w", err)
	}

	query := `
	INSERT INTO optimization_reports (
		id,
		created_at,
		depot,
		total_deliveries,
		total_routes,
		total_distance_km,
		total_time_minutes,
		total_cost,
		report
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.CreatedAt,
		depot,
		entry.TotalDeliveries,
		entry.TotalRoutes,
		entry.TotalDistanceKm,
		entry.TotalTime,
		entry.TotalCost,
		report,
	)
	if err != nil {
		return fmt.Errorf("save report: insert id=%s: %w", entry.ID, err)
	}
	return nil
}

// ListReports returns summaries newest first. The Report field is left
// zeroed; GetReport loads the full document.
func (r *PostgresReportRepository) ListReports(ctx context.Context) ([]domain.HistoryEntry, error) {
	if r.DB == nil {
		return nil, errors.New("postgres report repository: DB is nil")
	}

	query := `
	SELECT
		id,
		created_at,
		depot,
		total_deliveries,
		total_routes,
		total_distance_km,
		total_time_minutes,
		total_cost
	FROM optimization_reports
	ORDER BY created_at DESC;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reports: query: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, 16)
	for rows.Next() {
		var entry domain.HistoryEntry
		var depot []byte
		err := rows.Scan(
			&entry.ID,
			&entry.CreatedAt,
			&depot,
			&entry.TotalDeliveries,
			&entry.TotalRoutes,
			&entry.TotalDistanceKm,
			&entry.TotalTime,
			&entry.TotalCost,
		)
		if err != nil {
			return nil, fmt.Errorf("list reports: scan row: %w", err)
		}
		if err := json.Unmarshal(depot, &entry.Depot); err != nil {
			return nil, fmt.Errorf("list reports: decode depot for id=%s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: row iteration: %w", err)
	}
	return entries, nil
}

func (r *PostgresReportRepository) GetReport(ctx context.Context, id string) (domain.HistoryEntry, error) {
	if r.DB == nil {
		return domain.HistoryEntry{}, errors.New("postgres report repository: DB is nil")
	}

	query := `
	SELECT
		id,
		created_at,
		depot,
		total_deliveries,
		total_routes,
		total_distance_km,
		total_time_minutes,
		total_cost,
		report
	FROM optimization_reports
	WHERE id = $1;
	`
	var entry domain.HistoryEntry
	var depot, report []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.CreatedAt,
		&depot,
		&entry.TotalDeliveries,
		&entry.TotalRoutes,
		&entry.TotalDistanceKm,
		&entry.TotalTime,
		&entry.TotalCost,
		&report,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HistoryEntry{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get report id=%s: %w", id, err)
	}

	if err := json.Unmarshal(depot, &entry.Depot); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get report id=%s: decode depot: %w", id, err)
	}
	if err := json.Unmarshal(report, &entry.Report); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get report id=%s: decode report: %w", id, err)
	}
	return entry, nil
}

func (r *PostgresReportRepository) DeleteReport(ctx context.Context, id string) error {
	if r.DB == nil {
		return errors.New("postgres report repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM optimization_reports WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete report id=%s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report id=%s: rows affected: %w", id, err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
