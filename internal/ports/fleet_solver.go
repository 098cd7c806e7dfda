package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// FleetSolution is the output of an external fleet solver: per-vehicle
// ordered routes plus the stop ids the solver could not place.
type FleetSolution struct {
	Routes     []domain.Route
	Unassigned []string
}

// FleetSolver is the contract for an external vehicle-routing service
// (cloud VRP solver). On any failure (non-2xx, timeout, malformed payload)
// callers fall back to the local constructive heuristic rather than
// surfacing an error.
type FleetSolver interface {
	SolveFleet(
		ctx context.Context,
		depot domain.Depot,
		stops []domain.Stop,
		vehicles []domain.Vehicle,
		objective domain.Objective,
	) (FleetSolution, error)
}
