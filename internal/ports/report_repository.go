package ports

import (
	"context"
	"errors"

	"route-optimizer-service/internal/domain"
)

var ErrNotFound = errors.New("not found")

// ReportRepository is a boundary for persisting optimization reports so past
// runs can be listed and re-opened. The core never depends on it.
type ReportRepository interface {
	SaveReport(ctx context.Context, entry domain.HistoryEntry) error
	// ListReports returns summaries (Report field zeroed) newest first.
	ListReports(ctx context.Context) ([]domain.HistoryEntry, error)
	GetReport(ctx context.Context, id string) (domain.HistoryEntry, error)
	DeleteReport(ctx context.Context, id string) error
}
