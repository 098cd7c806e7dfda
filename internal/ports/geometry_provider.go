package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// GeometryProvider returns road-following display paths for finished routes.
// Geometry is presentation-only: it has zero influence on distances, times,
// costs, or feasibility decisions, and its failure must never affect the
// optimization report.
type GeometryProvider interface {
	// RoutePath fetches the road geometry for one depot -> stops -> depot loop.
	RoutePath(ctx context.Context, vehicleID string, waypoints []domain.Coordinate) (domain.RoutePath, error)
}
