package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
)

// OptimizeRequest is one self-contained optimization problem. All fields are
// request-scoped; the service holds no state across requests.
type OptimizeRequest struct {
	Depot     domain.Depot
	Stops     []domain.Stop
	Vehicles  []domain.Vehicle
	Objective domain.Objective
	CostModel *domain.CostModel
}

// Optimizer runs route construction and the three-scenario comparison.
// Solver and Baseline are optional external providers; either may be nil and
// any failure from them degrades to the local heuristics.
type Optimizer struct {
	Solver          ports.FleetSolver
	Baseline        ports.BaselineProvider
	Log             *logger.Logger
	ExternalTimeout time.Duration
}

const defaultExternalTimeout = 10 * time.Second

// Optimize builds per-vehicle routes and the comparison report. It fails only
// on invalid input: an unreachable external dependency is never an error.
// The result is deterministic for identical input (tie-breaks follow pool
// order, which is the priority-sorted input order).
func (o *Optimizer) Optimize(ctx context.Context, req OptimizeRequest) (*domain.OptimizationReport, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()

	// The baselines are logically independent of construction; run them
	// concurrently so a slow external provider never delays the fleet result.
	type naiveResult struct {
		km  float64
		min int
	}
	naiveCh := make(chan naiveResult, 1)
	go func() {
		km, min := NaiveRoute(req.Depot, req.Stops)
		naiveCh <- naiveResult{km: km, min: min}
	}()

	type singleResult struct {
		metrics domain.ScenarioMetrics
		status  domain.BaselineStatus
	}
	singleCh := make(chan singleResult, 1)
	go func() {
		m, s := o.singleVehicleBaseline(ctx, req.Depot, req.Stops)
		singleCh <- singleResult{metrics: m, status: s}
	}()

	fleet := o.solveFleet(ctx, req)

	naive := <-naiveCh
	single := <-singleCh

	return o.assemble(req, fleet, naive.km, naive.min, single.metrics, single.status, start), nil
}

func validateRequest(req OptimizeRequest) error {
	if err := req.Depot.Validate(); err != nil {
		return err
	}
	if len(req.Stops) == 0 {
		return errors.New("at least one delivery is required")
	}
	if len(req.Vehicles) == 0 {
		return errors.New("at least one vehicle is required")
	}

	seen := make(map[string]struct{}, len(req.Stops))
	for _, s := range req.Stops {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("duplicate stop id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	for _, v := range req.Vehicles {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if req.CostModel != nil && (req.CostModel.CostPerMile < 0 || req.CostModel.CostPerHour < 0) {
		return errors.New("cost model rates must be >= 0")
	}
	return nil
}

// solveFleet prefers the external VRP solver when configured, falling back
// to the local constructive heuristic on any failure.
func (o *Optimizer) solveFleet(ctx context.Context, req OptimizeRequest) ConstructionResult {
	if o.Solver != nil {
		solverCtx, cancel := context.WithTimeout(ctx, o.externalTimeout())
		sol, err := o.Solver.SolveFleet(solverCtx, req.Depot, req.Stops, req.Vehicles, req.Objective)
		cancel()
		if err == nil {
			err = verifyPartition(req.Stops, sol)
		}
		if err == nil {
			return ConstructionResult{Routes: sol.Routes, Unassigned: sol.Unassigned}
		}
		if o.Log != nil {
			o.Log.WithError(err).Warn("external fleet solver failed; using local heuristic")
		}
	}

	return ConstructRoutes(req.Depot, req.Stops, req.Vehicles, req.Objective)
}

// verifyPartition confirms a solver's answer places every requested stop in
// exactly one of routes or unassigned. Anything else is a malformed solution
// and the caller must discard it.
func verifyPartition(stops []domain.Stop, sol ports.FleetSolution) error {
	seen := make(map[string]int, len(stops))
	for _, route := range sol.Routes {
		for _, s := range route.Stops {
			seen[s.StopID]++
		}
	}
	for _, id := range sol.Unassigned {
		seen[id]++
	}

	for _, s := range stops {
		if n := seen[s.ID]; n != 1 {
			return fmt.Errorf("solver solution covers stop %q %d times, want exactly once", s.ID, n)
		}
	}
	return nil
}

// singleVehicleBaseline resolves the single-optimized-vehicle comparison
// figure. The local nearest-neighbor estimate is always computed so every
// failure path has a deterministic fallback; the status records provenance.
func (o *Optimizer) singleVehicleBaseline(
	ctx context.Context,
	depot domain.Depot,
	stops []domain.Stop,
) (domain.ScenarioMetrics, domain.BaselineStatus) {
	localKm, localMin := NearestNeighborBaseline(depot, stops)
	local := domain.ScenarioMetrics{
		DistanceKm:   round2(localKm),
		TimeMinutes:  localMin,
		VehicleCount: 1,
	}

	if o.Baseline == nil {
		return local, domain.BaselineUnavailable
	}

	// One-shot with an explicit timeout: fail fast and fall back locally.
	// The external figure only affects comparison quality, never correctness.
	extCtx, cancel := context.WithTimeout(ctx, o.externalTimeout())
	defer cancel()

	m, err := o.Baseline.SingleVehicleBaseline(extCtx, depot, stops)
	if err != nil {
		if errors.Is(err, ports.ErrNotConfigured) {
			return local, domain.BaselineUnavailable
		}
		if o.Log != nil {
			o.Log.WithError(err).Warn("directions baseline failed; using local estimate")
		}
		return local, domain.BaselineEstimated
	}

	status := domain.BaselineExternal
	if m.Limited {
		status = domain.BaselineLimited
	}
	return domain.ScenarioMetrics{
		DistanceKm:   round2(m.DistanceKm),
		TimeMinutes:  m.TimeMinutes,
		VehicleCount: 1,
	}, status
}

// assemble aggregates per-vehicle routes into totals, savings, costs, and
// the three-scenario comparison.
func (o *Optimizer) assemble(
	req OptimizeRequest,
	fleet ConstructionResult,
	naiveKm float64,
	naiveMin int,
	single domain.ScenarioMetrics,
	singleStatus domain.BaselineStatus,
	start time.Time,
) *domain.OptimizationReport {
	var totalKm float64
	var totalMin int
	for _, r := range fleet.Routes {
		totalKm += r.TotalDistanceKm
		totalMin += r.TotalTime
	}
	totalKm = round2(totalKm)

	savings := &domain.SavingsSummary{
		NaiveDistanceKm:     round2(naiveKm),
		NaiveTime:           naiveMin,
		OptimizedDistanceKm: totalKm,
		OptimizedTime:       totalMin,
		DistanceSavedKm:     round2(naiveKm - totalKm),
		TimeSaved:           naiveMin - totalMin,
	}
	// Zero baselines yield 0% savings, never a division error.
	if naiveKm > 0 {
		savings.DistanceSavedPercent = round1((naiveKm - totalKm) / naiveKm * 100)
	}
	if naiveMin > 0 {
		savings.TimeSavedPercent = round1(float64(naiveMin-totalMin) / float64(naiveMin) * 100)
	}

	var costs *domain.CostSummary
	if req.CostModel != nil {
		distanceCost := domain.KmToMiles(totalKm) * req.CostModel.CostPerMile
		timeCost := float64(totalMin) / 60 * req.CostModel.CostPerHour
		costs = &domain.CostSummary{
			DistanceCost: round2(distanceCost),
			TimeCost:     round2(timeCost),
			TotalCost:    round2(distanceCost + timeCost),
		}

		naiveCost := req.CostModel.Cost(naiveKm, naiveMin)
		saved := round2(naiveCost - (distanceCost + timeCost))
		savings.MoneySaved = &saved
	}

	manual := domain.ScenarioMetrics{
		DistanceKm:   round2(naiveKm),
		TimeMinutes:  naiveMin,
		VehicleCount: 1,
	}
	fleetMetrics := domain.ScenarioMetrics{
		DistanceKm:   totalKm,
		TimeMinutes:  totalMin,
		VehicleCount: len(fleet.Routes),
	}
	comparison := BuildComparison(manual, single, fleetMetrics, singleStatus, "", req.CostModel)

	return &domain.OptimizationReport{
		Success:            true,
		Message:            fmt.Sprintf("Optimization complete. %d routes created.", len(fleet.Routes)),
		Routes:             fleet.Routes,
		Unassigned:         fleet.Unassigned,
		TotalDistanceKm:    totalKm,
		TotalTime:          totalMin,
		ComputationSeconds: math.Round(time.Since(start).Seconds()*1000) / 1000,
		Costs:              costs,
		Savings:            savings,
		Comparison:         comparison,
	}
}

func (o *Optimizer) externalTimeout() time.Duration {
	if o.ExternalTimeout > 0 {
		return o.ExternalTimeout
	}
	return defaultExternalTimeout
}
