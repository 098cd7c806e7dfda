package domain

import "fmt"

// Objective selects the scoring function used during route construction.
// It is a closed set; unknown values are rejected at the boundary.
type Objective string

const (
	MinimizeDistance Objective = "minimize_distance"
	MinimizeTime     Objective = "minimize_time"
	BalanceRoutes    Objective = "balance_routes"
)

// ParseObjective validates an objective string, defaulting to
// MinimizeDistance when empty.
func ParseObjective(s string) (Objective, error) {
	switch Objective(s) {
	case "":
		return MinimizeDistance, nil
	case MinimizeDistance, MinimizeTime, BalanceRoutes:
		return Objective(s), nil
	default:
		return "", fmt.Errorf("unknown objective %q", s)
	}
}

// Score computes the candidate score for one stop under this objective.
// Lower is better. The balance objective applies a mild penalty that grows
// with the number of stops already committed to the route.
func (o Objective) Score(distanceKm float64, travelMinutes int, stopsOnRoute int) float64 {
	switch o {
	case MinimizeTime:
		return float64(travelMinutes)
	case BalanceRoutes:
		return distanceKm * (1 + 0.1*float64(stopsOnRoute))
	default:
		return distanceKm
	}
}
