package services

import (
	"fmt"

	"route-optimizer-service/internal/domain"
)

// BuildComparison assembles the manual, single-vehicle, and fleet scenarios
// into one comparable report. When a
// cost model is supplied each scenario gets a total cost; the single-vehicle
// provenance status travels with the result so callers can disclose where
// that figure came from.
func BuildComparison(
	manual, single, fleet domain.ScenarioMetrics,
	status domain.BaselineStatus,
	message string,
	cost *domain.CostModel,
) *domain.Comparison {
	if cost != nil {
		manual.TotalCost = scenarioCost(cost, manual)
		single.TotalCost = scenarioCost(cost, single)
		fleet.TotalCost = scenarioCost(cost, fleet)
	}

	if message == "" {
		message = statusMessage(status, single)
	}

	return &domain.Comparison{
		Manual:        manual,
		SingleVehicle: single,
		Fleet:         fleet,
		SingleStatus:  status,
		Message:       message,
	}
}

func scenarioCost(model *domain.CostModel, m domain.ScenarioMetrics) *float64 {
	c := round2(model.Cost(m.DistanceKm, m.TimeMinutes))
	return &c
}

func statusMessage(status domain.BaselineStatus, single domain.ScenarioMetrics) string {
	switch status {
	case domain.BaselineExternal:
		return "single-vehicle baseline from external directions provider"
	case domain.BaselineLimited:
		return "external provider waypoint limit exceeded; baseline covers a truncated stop set"
	case domain.BaselineEstimated:
		return "external directions provider failed; single-vehicle baseline estimated locally"
	default:
		return fmt.Sprintf(
			"no external directions provider configured; single-vehicle baseline estimated locally (%.1f km)",
			single.DistanceKm,
		)
	}
}
