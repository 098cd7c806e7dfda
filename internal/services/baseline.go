package services

import "route-optimizer-service/internal/domain"

// NaiveRoute computes the cost of visiting every stop in its original input
// order with a single vehicle at base speed, returning to the depot at the
// end. Service times are included. This is the "no optimization at all"
// comparison yardstick.
func NaiveRoute(depot domain.Depot, stops []domain.Stop) (distanceKm float64, timeMinutes int) {
	if len(stops) == 0 {
		return 0, 0
	}

	current := depot.Location
	for _, s := range stops {
		distanceKm += domain.Distance(current, s.Location)
		current = s.Location
	}
	distanceKm += domain.Distance(current, depot.Location)

	timeMinutes = domain.TravelTime(distanceKm, 1.0)
	for _, s := range stops {
		timeMinutes += s.ServiceTime
	}

	return distanceKm, timeMinutes
}

// NearestNeighborBaseline computes a constraint-free nearest-neighbor walk
// over all stops with one vehicle: pick the nearest remaining stop each step,
// no capacity or time-window checks. It represents "what one smart driver
// could do" when no external directions source is available. Ties go to the
// earlier stop in input order.
func NearestNeighborBaseline(depot domain.Depot, stops []domain.Stop) (distanceKm float64, timeMinutes int) {
	if len(stops) == 0 {
		return 0, 0
	}

	remaining := make([]domain.Stop, len(stops))
	copy(remaining, stops)

	current := depot.Location
	for len(remaining) > 0 {
		bestIdx := 0
		bestKm := domain.Distance(current, remaining[0].Location)
		for i := 1; i < len(remaining); i++ {
			if km := domain.Distance(current, remaining[i].Location); km < bestKm {
				bestKm = km
				bestIdx = i
			}
		}

		distanceKm += bestKm
		timeMinutes += remaining[bestIdx].ServiceTime
		current = remaining[bestIdx].Location
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	distanceKm += domain.Distance(current, depot.Location)

	timeMinutes += domain.TravelTime(distanceKm, 1.0)

	return distanceKm, timeMinutes
}
