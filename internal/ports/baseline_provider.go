package ports

import (
	"context"
	"errors"

	"route-optimizer-service/internal/domain"
)

// ErrNotConfigured signals that an optional external provider has no
// credentials. Callers degrade to a local estimate rather than failing.
var ErrNotConfigured = errors.New("provider not configured")

// BaselineMetrics is an optimized single-vehicle distance/time pair obtained
// from an external directions source.
type BaselineMetrics struct {
	DistanceKm  float64
	TimeMinutes int
	// Limited is set when the provider's waypoint ceiling forced the stop set
	// to be truncated before the call.
	Limited   bool
	LimitedTo int
}

// BaselineProvider is the contract for an external turn-by-turn directions
// source used only as a comparison yardstick. Implementations must fail fast
// (explicit timeout, no retries); a failure never affects route construction.
type BaselineProvider interface {
	// SingleVehicleBaseline returns the optimized distance/time for one
	// vehicle visiting every stop, or ErrNotConfigured / a transport error.
	SingleVehicleBaseline(ctx context.Context, depot domain.Depot, stops []domain.Stop) (BaselineMetrics, error)
}
