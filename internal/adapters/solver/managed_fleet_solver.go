package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// ManagedFleetSolver submits the fleet problem to a hosted VRP solver and
// maps its assignments back onto domain routes. Any failure - transport,
// status, or an unsolvable response - is returned as an error so the caller
// can fall back to the local constructor.
type ManagedFleetSolver struct {
	session *http.Client
	baseURL string
	apiKey  string
	log     *logger.Logger
}

func NewManagedFleetSolver(baseURL, apiKey string, log *logger.Logger) *ManagedFleetSolver {
	if log == nil {
		log = logger.New("error")
	}
	return &ManagedFleetSolver{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		log:     log,
	}
}

// Configured reports whether the solver endpoint has been set up. The
// optimizer treats an unconfigured solver the same as a failed one and runs
// the local constructor instead.
func (m *ManagedFleetSolver) Configured() bool {
	return m.baseURL != "" && m.apiKey != ""
}

type solveTask struct {
	ID       string  `json:"id"`
	Location int     `json:"location"`
	Demand   float64 `json:"demand"`
	Window   [2]int  `json:"window"`
	Service  int     `json:"service"`
}

type solveVehicle struct {
	ID       string  `json:"id"`
	Capacity float64 `json:"capacity"`
	Window   [2]int  `json:"window"`
	MaxStops int     `json:"max_stops"`
	Speed    float64 `json:"speed_factor"`
}

type solveRequest struct {
	CostMatrix [][]int        `json:"cost_matrix"`
	Tasks      []solveTask    `json:"tasks"`
	Vehicles   []solveVehicle `json:"vehicles"`
	Objective  string         `json:"objective"`
}

type solveRoute struct {
	VehicleID      string   `json:"vehicle_id"`
	StopIDs        []string `json:"stop_ids"`
	ArrivalMinutes []int    `json:"arrival_minutes"`
}

type solveResponse struct {
	Status     string       `json:"status"`
	Detail     string       `json:"detail"`
	Routes     []solveRoute `json:"routes"`
	Unassigned []string     `json:"unassigned"`
}

// SolveFleet posts the problem and converts the solver's stop orderings into
// fully timed routes. Cost and arrival figures in the response are trusted;
// leg distances and directions are recomputed locally from coordinates.
func (m *ManagedFleetSolver) SolveFleet(
	ctx context.Context,
	depot domain.Depot,
	stops []domain.Stop,
	vehicles []domain.Vehicle,
	objective domain.Objective,
) (_ ports.FleetSolution, err error) {
	if !m.Configured() {
		return ports.FleetSolution{}, fmt.Errorf("fleet solver not configured")
	}

	defer obs.Time(ctx, m.log, "solver.SolveFleet")(&err)

	payload := m.buildRequest(depot, stops, vehicles, objective)
	resp, err := m.submit(ctx, payload)
	if err != nil {
		return ports.FleetSolution{}, err
	}

	return m.assembleSolution(depot, stops, vehicles, resp)
}

// buildRequest flattens the problem into matrix form. Index 0 is the depot;
// task locations refer to matrix rows. Matrix entries are travel minutes at
// the base fleet speed, leaving per-vehicle speed factors to the solver.
func (m *ManagedFleetSolver) buildRequest(
	depot domain.Depot,
	stops []domain.Stop,
	vehicles []domain.Vehicle,
	objective domain.Objective,
) solveRequest {
	points := make([]domain.Coordinate, 0, 1+len(stops))
	points = append(points, depot.Location)
	for _, s := range stops {
		points = append(points, s.Location)
	}

	matrix := make([][]int, len(points))
	for i := range points {
		row := make([]int, len(points))
		for j := range points {
			if i != j {
				row[j] = domain.TravelTime(domain.Distance(points[i], points[j]), 1.0)
			}
		}
		matrix[i] = row
	}

	tasks := make([]solveTask, 0, len(stops))
	for i, s := range stops {
		tasks = append(tasks, solveTask{
			ID:       s.ID,
			Location: i + 1,
			Demand:   s.Demand,
			Window:   [2]int{domain.ClockToMinutes(s.TimeWindowStart), domain.ClockToMinutes(s.TimeWindowEnd)},
			Service:  s.ServiceTime,
		})
	}

	vs := make([]solveVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		vs = append(vs, solveVehicle{
			ID:       v.ID,
			Capacity: v.Capacity,
			Window:   [2]int{domain.ClockToMinutes(v.StartTime), domain.ClockToMinutes(v.EndTime)},
			MaxStops: v.MaxStops,
			Speed:    v.SpeedFactor,
		})
	}

	return solveRequest{CostMatrix: matrix, Tasks: tasks, Vehicles: vs, Objective: string(objective)}
}

func (m *ManagedFleetSolver) submit(ctx context.Context, payload solveRequest) (solveResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return solveResponse{}, fmt.Errorf("encode solve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v1/solve", bytes.NewReader(body))
	if err != nil {
		return solveResponse{}, fmt.Errorf("build solve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.session.Do(req)
	if err != nil {
		return solveResponse{}, fmt.Errorf("solve request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return solveResponse{}, fmt.Errorf("solver status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed solveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return solveResponse{}, fmt.Errorf("decode solve response: %w", err)
	}
	if parsed.Status != "ok" {
		return solveResponse{}, fmt.Errorf("solver status %q: %s", parsed.Status, parsed.Detail)
	}
	return parsed, nil
}

// assembleSolution rebuilds domain routes from the solver's stop orderings.
// Arrival times come from the solver; distances, directions, loads, and the
// return leg are recomputed from coordinates so reported figures stay
// consistent with locally constructed routes. The response must partition
// the request's stop set: every stop id exactly once across routes and
// unassigned, or the whole response is rejected as malformed.
func (m *ManagedFleetSolver) assembleSolution(
	depot domain.Depot,
	stops []domain.Stop,
	vehicles []domain.Vehicle,
	resp solveResponse,
) (ports.FleetSolution, error) {
	byID := make(map[string]domain.Stop, len(stops))
	for _, s := range stops {
		byID[s.ID] = s
	}
	vehicleByID := make(map[string]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v
	}

	seen := make(map[string]int, len(stops))

	var solution ports.FleetSolution
	for _, r := range resp.Routes {
		vehicle, ok := vehicleByID[r.VehicleID]
		if !ok {
			return ports.FleetSolution{}, fmt.Errorf("solver returned unknown vehicle %q", r.VehicleID)
		}
		if len(r.ArrivalMinutes) != len(r.StopIDs) {
			return ports.FleetSolution{}, fmt.Errorf("solver route for %q: %d stops but %d arrivals",
				r.VehicleID, len(r.StopIDs), len(r.ArrivalMinutes))
		}
		if len(r.StopIDs) == 0 {
			continue
		}
		for _, id := range r.StopIDs {
			seen[id]++
		}

		route, err := m.assembleRoute(depot, vehicle, r, byID)
		if err != nil {
			return ports.FleetSolution{}, err
		}
		solution.Routes = append(solution.Routes, route)
	}

	for _, id := range resp.Unassigned {
		if _, ok := byID[id]; !ok {
			return ports.FleetSolution{}, fmt.Errorf("solver returned unknown unassigned stop %q", id)
		}
		seen[id]++
		solution.Unassigned = append(solution.Unassigned, id)
	}

	for _, s := range stops {
		if n := seen[s.ID]; n != 1 {
			return ports.FleetSolution{}, fmt.Errorf("solver response covers stop %q %d times, want exactly once", s.ID, n)
		}
	}

	return solution, nil
}

func (m *ManagedFleetSolver) assembleRoute(
	depot domain.Depot,
	vehicle domain.Vehicle,
	r solveRoute,
	byID map[string]domain.Stop,
) (domain.Route, error) {
	route := domain.Route{VehicleID: vehicle.ID, VehicleName: vehicle.Name}

	position := depot.Location
	var cumDist, cumLoad float64
	for i, id := range r.StopIDs {
		stop, ok := byID[id]
		if !ok {
			return domain.Route{}, fmt.Errorf("solver route for %q references unknown stop %q", vehicle.ID, id)
		}

		legKm := domain.Distance(position, stop.Location)
		cumDist += legKm
		cumLoad += stop.Demand
		arrival := r.ArrivalMinutes[i]

		route.Stops = append(route.Stops, domain.RouteStop{
			Sequence:             i + 1,
			StopID:               stop.ID,
			CustomerName:         stop.Name,
			CustomerPhone:        stop.Phone,
			Location:             stop.Location,
			Address:              stop.Address,
			ArrivalTime:          domain.MinutesToClock(arrival),
			DepartureTime:        domain.MinutesToClock(arrival + stop.ServiceTime),
			CumulativeDistanceKm: round2(cumDist),
			CumulativeLoad:       cumLoad,
			Directions:           domain.DirectionHint(position, stop.Location, legKm),
		})
		position = stop.Location
	}

	if vehicle.Capacity > 0 && cumLoad > vehicle.Capacity {
		return domain.Route{}, fmt.Errorf("solver route for %q carries %g over capacity %g",
			vehicle.ID, cumLoad, vehicle.Capacity)
	}

	returnKm := domain.Distance(position, depot.Location)
	returnMin := domain.TravelTime(returnKm, vehicle.SpeedFactor)

	last := r.StopIDs[len(r.StopIDs)-1]
	lastStop := byID[last]
	endMinutes := r.ArrivalMinutes[len(r.ArrivalMinutes)-1] + lastStop.ServiceTime + returnMin

	route.TotalDistanceKm = round2(cumDist + returnKm)
	route.TotalTime = endMinutes - domain.ClockToMinutes(vehicle.StartTime)
	route.TotalLoad = cumLoad
	if vehicle.Capacity > 0 {
		route.Utilization = round1(cumLoad / vehicle.Capacity * 100)
	}
	return route, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
