package services

import (
	"math"
	"sort"

	"route-optimizer-service/internal/domain"
)

// ConstructionResult holds the fleet routes plus every stop the constructor
// could not place. An unplaced stop is not an error; dispatchers handle
// overflow manually.
type ConstructionResult struct {
	Routes     []domain.Route
	Unassigned []string
}

// vehicleState tracks one vehicle's position in clock-time and space while
// its route is being built.
type vehicleState struct {
	position  domain.Coordinate
	load      float64
	elapsed   int // minutes since midnight
	windowEnd int
	cumDistKm float64
	stops     []domain.RouteStop
}

// ConstructRoutes assigns stops to vehicles with a constrained
// nearest-neighbor heuristic. Vehicles are processed strictly in the given
// order: vehicle N's candidate pool is whatever vehicles 1..N-1 left behind,
// so the loop must never be parallelized across vehicles.
//
// The remaining pool is sorted by priority once, before any vehicle is
// processed, keeping the original input order as tie-break. Score ties
// between candidates go to the first stop encountered in pool order; since
// the pool is a slice, that order is deterministic for identical input.
func ConstructRoutes(
	depot domain.Depot,
	stops []domain.Stop,
	vehicles []domain.Vehicle,
	objective domain.Objective,
) ConstructionResult {
	// The pool is an owned copy: construction never mutates caller data, and
	// each vehicle consumes from what the previous one left.
	pool := make([]domain.Stop, len(stops))
	copy(pool, stops)
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Priority < pool[j].Priority })

	routes := make([]domain.Route, 0, len(vehicles))

	for _, vehicle := range vehicles {
		if len(pool) == 0 {
			break
		}

		var route domain.Route
		route, pool = buildRoute(depot, vehicle, pool, objective)
		if len(route.Stops) > 0 {
			routes = append(routes, route)
		}
	}

	unassigned := make([]string, 0, len(pool))
	for _, s := range pool {
		unassigned = append(unassigned, s.ID)
	}

	return ConstructionResult{Routes: routes, Unassigned: unassigned}
}

// buildRoute grows one vehicle's route greedily until no remaining stop
// passes every feasibility predicate, then closes it with the return leg.
// It returns the finished route and the stops left for later vehicles.
func buildRoute(
	depot domain.Depot,
	vehicle domain.Vehicle,
	pool []domain.Stop,
	objective domain.Objective,
) (domain.Route, []domain.Stop) {
	state := vehicleState{
		position:  depot.Location,
		elapsed:   domain.ClockToMinutes(vehicle.StartTime),
		windowEnd: domain.ClockToMinutes(vehicle.EndTime),
	}
	windowStart := state.elapsed

	for len(pool) > 0 {
		idx, found := pickNextStop(depot, vehicle, &state, pool, objective)
		if !found {
			break
		}

		commitStop(&state, pool[idx], vehicle.SpeedFactor)
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	route := domain.Route{
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.Name,
		Stops:       state.stops,
	}

	if len(state.stops) > 0 {
		returnKm := domain.Distance(state.position, depot.Location)
		returnMin := domain.TravelTime(returnKm, vehicle.SpeedFactor)
		state.cumDistKm += returnKm

		route.TotalDistanceKm = round2(state.cumDistKm)
		route.TotalTime = state.elapsed + returnMin - windowStart
		route.TotalLoad = state.load
		route.Utilization = round1(state.load / vehicle.Capacity * 100)
	}

	return route, pool
}

// pickNextStop scores every still-unassigned stop that passes all four
// feasibility predicates and returns the pool index of the minimum-score
// candidate. Strict less-than comparison keeps the first-found tie-break.
func pickNextStop(
	depot domain.Depot,
	vehicle domain.Vehicle,
	state *vehicleState,
	pool []domain.Stop,
	objective domain.Objective,
) (int, bool) {
	bestIdx := -1
	bestScore := math.Inf(1)

	for i, stop := range pool {
		// Capacity is a hard constraint; utilization can never exceed 100%.
		if state.load+stop.Demand > vehicle.Capacity {
			continue
		}

		if vehicle.MaxStops > 0 && len(state.stops) >= vehicle.MaxStops {
			continue
		}

		legKm := domain.Distance(state.position, stop.Location)
		legMin := domain.TravelTime(legKm, vehicle.SpeedFactor)
		arrival := state.elapsed + legMin

		if stop.TimeWindowEnd != "" && arrival > domain.ClockToMinutes(stop.TimeWindowEnd) {
			continue
		}

		// Two-step arrival: raw, then clamped up to the window start. The
		// return check uses the clamped value because waiting time counts
		// against the vehicle's own window.
		served := arrival
		if stop.TimeWindowStart != "" {
			if ws := domain.ClockToMinutes(stop.TimeWindowStart); served < ws {
				served = ws
			}
		}

		returnKm := domain.Distance(stop.Location, depot.Location)
		returnMin := domain.TravelTime(returnKm, vehicle.SpeedFactor)
		if served+stop.ServiceTime+returnMin > state.windowEnd {
			continue
		}

		score := objective.Score(legKm, legMin, len(state.stops))
		if score < bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return 0, false
	}
	return bestIdx, true
}

// commitStop advances the vehicle state through the chosen stop and records
// the resulting RouteStop.
func commitStop(state *vehicleState, stop domain.Stop, speedFactor float64) {
	legKm := domain.Distance(state.position, stop.Location)
	legMin := domain.TravelTime(legKm, speedFactor)

	state.cumDistKm += legKm
	state.load += stop.Demand

	arrival := state.elapsed + legMin
	if stop.TimeWindowStart != "" {
		if ws := domain.ClockToMinutes(stop.TimeWindowStart); arrival < ws {
			// Arrival is clamped upward to the window start, never downward.
			arrival = ws
		}
	}
	departure := arrival + stop.ServiceTime

	state.stops = append(state.stops, domain.RouteStop{
		Sequence:             len(state.stops) + 1,
		StopID:               stop.ID,
		CustomerName:         stop.Name,
		CustomerPhone:        stop.Phone,
		Location:             stop.Location,
		Address:              stop.Address,
		ArrivalTime:          domain.MinutesToClock(arrival),
		DepartureTime:        domain.MinutesToClock(departure),
		CumulativeDistanceKm: round2(state.cumDistKm),
		CumulativeLoad:       state.load,
		Directions:           domain.DirectionHint(state.position, stop.Location, legKm),
	})

	state.position = stop.Location
	state.elapsed = departure
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
