package services

import (
	"context"
	"errors"
	"testing"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

type stubBaseline struct {
	metrics ports.BaselineMetrics
	err     error
}

func (s stubBaseline) SingleVehicleBaseline(ctx context.Context, depot domain.Depot, stops []domain.Stop) (ports.BaselineMetrics, error) {
	return s.metrics, s.err
}

type stubSolver struct {
	solution ports.FleetSolution
	err      error
}

func (s stubSolver) SolveFleet(ctx context.Context, depot domain.Depot, stops []domain.Stop, vehicles []domain.Vehicle, objective domain.Objective) (ports.FleetSolution, error) {
	return s.solution, s.err
}

func optimizeRequest() OptimizeRequest {
	return OptimizeRequest{
		Depot: domain.Depot{ID: "depot", Location: domain.Coordinate{Lat: 0, Lon: 0}},
		Stops: []domain.Stop{
			{ID: "d1", Location: domain.Coordinate{Lat: 0, Lon: 1}, Demand: 1, ServiceTime: 5, Priority: 1},
		},
		Vehicles: []domain.Vehicle{
			{ID: "v1", Capacity: 10, StartTime: "08:00", EndTime: "18:00", SpeedFactor: 1.0},
		},
		Objective: domain.MinimizeDistance,
	}
}

func TestOptimizeValidation(t *testing.T) {
	o := &Optimizer{}

	tests := []struct {
		name   string
		mutate func(*OptimizeRequest)
	}{
		{"no stops", func(r *OptimizeRequest) { r.Stops = nil }},
		{"no vehicles", func(r *OptimizeRequest) { r.Vehicles = nil }},
		{"bad depot latitude", func(r *OptimizeRequest) { r.Depot.Location.Lat = 91 }},
		{"bad stop longitude", func(r *OptimizeRequest) { r.Stops[0].Location.Lon = -200 }},
		{"duplicate stop ids", func(r *OptimizeRequest) { r.Stops = append(r.Stops, r.Stops[0]) }},
		{"zero capacity", func(r *OptimizeRequest) { r.Vehicles[0].Capacity = 0 }},
		{"negative demand", func(r *OptimizeRequest) { r.Stops[0].Demand = -1 }},
		{"priority out of range", func(r *OptimizeRequest) { r.Stops[0].Priority = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := optimizeRequest()
			tt.mutate(&req)
			if _, err := o.Optimize(context.Background(), req); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestOptimizeLocalOnly(t *testing.T) {
	o := &Optimizer{}
	report, err := o.Optimize(context.Background(), optimizeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Success {
		t.Fatal("report should be successful")
	}
	if len(report.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(report.Routes))
	}
	if len(report.Unassigned) != 0 {
		t.Fatalf("unassigned = %v, want empty", report.Unassigned)
	}
	if report.Comparison == nil {
		t.Fatal("comparison missing")
	}
	if report.Comparison.SingleStatus != domain.BaselineUnavailable {
		t.Errorf("status = %s, want unavailable", report.Comparison.SingleStatus)
	}
	if report.Savings == nil {
		t.Fatal("savings missing")
	}
	if report.Costs != nil {
		t.Error("no cost model was supplied; costs should be nil")
	}
}

func TestOptimizeExternalBaseline(t *testing.T) {
	o := &Optimizer{
		Baseline: stubBaseline{metrics: ports.BaselineMetrics{DistanceKm: 200, TimeMinutes: 300}},
	}

	report, err := o.Optimize(context.Background(), optimizeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmp := report.Comparison
	if cmp.SingleStatus != domain.BaselineExternal {
		t.Fatalf("status = %s, want external", cmp.SingleStatus)
	}
	if cmp.SingleVehicle.DistanceKm != 200 || cmp.SingleVehicle.TimeMinutes != 300 {
		t.Errorf("single-vehicle metrics = %+v, want the provider's figures", cmp.SingleVehicle)
	}
}

func TestOptimizeLimitedBaseline(t *testing.T) {
	o := &Optimizer{
		Baseline: stubBaseline{metrics: ports.BaselineMetrics{DistanceKm: 150, TimeMinutes: 200, Limited: true, LimitedTo: 23}},
	}

	report, err := o.Optimize(context.Background(), optimizeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Comparison.SingleStatus != domain.BaselineLimited {
		t.Errorf("status = %s, want limited", report.Comparison.SingleStatus)
	}
}

func TestOptimizeBaselineFailureDegradesToEstimate(t *testing.T) {
	o := &Optimizer{
		Baseline: stubBaseline{err: errors.New("upstream 503")},
	}

	report, err := o.Optimize(context.Background(), optimizeRequest())
	if err != nil {
		t.Fatalf("a failing baseline provider must not fail the request: %v", err)
	}

	cmp := report.Comparison
	if cmp.SingleStatus != domain.BaselineEstimated {
		t.Fatalf("status = %s, want estimated", cmp.SingleStatus)
	}
	// The figure must be the local nearest-neighbor estimate, not zero.
	if cmp.SingleVehicle.DistanceKm <= 0 {
		t.Errorf("single-vehicle distance = %v, want local estimate > 0", cmp.SingleVehicle.DistanceKm)
	}
}

func TestOptimizeUnconfiguredBaseline(t *testing.T) {
	o := &Optimizer{Baseline: stubBaseline{err: ports.ErrNotConfigured}}

	report, err := o.Optimize(context.Background(), optimizeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Comparison.SingleStatus != domain.BaselineUnavailable {
		t.Errorf("status = %s, want unavailable", report.Comparison.SingleStatus)
	}
}

func TestOptimizeSolverFallback(t *testing.T) {
	o := &Optimizer{Solver: stubSolver{err: errors.New("cuopt: 502 bad gateway")}}

	report, err := o.Optimize(context.Background(), optimizeRequest())
	if err != nil {
		t.Fatalf("a failing solver must not fail the request: %v", err)
	}
	// The local heuristic produced the route instead.
	if len(report.Routes) != 1 {
		t.Fatalf("routes = %d, want 1 from local fallback", len(report.Routes))
	}
}

func TestOptimizeSolverResultUsed(t *testing.T) {
	solved := ports.FleetSolution{
		Routes: []domain.Route{{VehicleID: "v1", TotalDistanceKm: 42, TotalTime: 60,
			Stops: []domain.RouteStop{{Sequence: 1, StopID: "d1"}}}},
	}
	o := &Optimizer{Solver: stubSolver{solution: solved}}

	report, err := o.Optimize(context.Background(), optimizeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalDistanceKm != 42 {
		t.Errorf("total distance = %v, want the solver's 42", report.TotalDistanceKm)
	}
}

func TestOptimizeSolverDroppedStopFallsBackLocally(t *testing.T) {
	req := optimizeRequest()
	req.Stops = append(req.Stops, domain.Stop{
		ID: "d2", Location: domain.Coordinate{Lat: 1, Lon: 0}, Demand: 1, ServiceTime: 5, Priority: 1,
	})

	// The solution names only d1; d2 is neither routed nor unassigned.
	dropped := ports.FleetSolution{
		Routes: []domain.Route{{VehicleID: "v1",
			Stops: []domain.RouteStop{{Sequence: 1, StopID: "d1"}}}},
	}
	o := &Optimizer{Solver: stubSolver{solution: dropped}}

	report, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := make(map[string]int)
	for _, route := range report.Routes {
		for _, s := range route.Stops {
			counts[s.StopID]++
		}
	}
	for _, id := range report.Unassigned {
		counts[id]++
	}
	for _, want := range []string{"d1", "d2"} {
		if counts[want] != 1 {
			t.Errorf("stop %s appears %d times across routes+unassigned, want exactly 1", want, counts[want])
		}
	}
}

func TestOptimizeCostsAndSavings(t *testing.T) {
	req := optimizeRequest()
	req.CostModel = &domain.CostModel{CostPerMile: 0.585, CostPerHour: 25}

	o := &Optimizer{}
	report, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Costs == nil {
		t.Fatal("costs missing")
	}
	if report.Costs.TotalCost <= 0 {
		t.Errorf("total cost = %v, want > 0", report.Costs.TotalCost)
	}
	if report.Savings.MoneySaved == nil {
		t.Fatal("money saved missing")
	}

	// One stop, one vehicle: fleet equals naive, so savings are ~0, not negative noise.
	if report.Savings.DistanceSavedPercent > 100 {
		t.Errorf("distance saved percent = %v, want <= 100", report.Savings.DistanceSavedPercent)
	}
}
