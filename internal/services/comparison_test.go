package services

import (
	"strings"
	"testing"

	"route-optimizer-service/internal/domain"
)

func TestBuildComparisonAttachesCosts(t *testing.T) {
	manual := domain.ScenarioMetrics{DistanceKm: 100, TimeMinutes: 120, VehicleCount: 1}
	single := domain.ScenarioMetrics{DistanceKm: 80, TimeMinutes: 100, VehicleCount: 1}
	fleet := domain.ScenarioMetrics{DistanceKm: 60, TimeMinutes: 90, VehicleCount: 3}
	cost := &domain.CostModel{CostPerMile: 1.0, CostPerHour: 30.0}

	cmp := BuildComparison(manual, single, fleet, domain.BaselineExternal, "", cost)

	if cmp.Manual.TotalCost == nil || cmp.SingleVehicle.TotalCost == nil || cmp.Fleet.TotalCost == nil {
		t.Fatal("every scenario should carry a cost when a model is supplied")
	}

	// 100 km = 62.1371 miles at $1/mile, plus 2h at $30/h.
	want := 62.14 + 60.0
	if got := *cmp.Manual.TotalCost; got < want-0.01 || got > want+0.01 {
		t.Errorf("manual cost = %v, want ~%v", got, want)
	}
}

func TestBuildComparisonNoCostModel(t *testing.T) {
	cmp := BuildComparison(
		domain.ScenarioMetrics{}, domain.ScenarioMetrics{}, domain.ScenarioMetrics{},
		domain.BaselineUnavailable, "", nil,
	)

	if cmp.Manual.TotalCost != nil || cmp.SingleVehicle.TotalCost != nil || cmp.Fleet.TotalCost != nil {
		t.Fatal("no scenario should carry a cost without a model")
	}
}

func TestBuildComparisonStatusMessages(t *testing.T) {
	tests := []struct {
		status domain.BaselineStatus
		want   string
	}{
		{domain.BaselineExternal, "external directions provider"},
		{domain.BaselineLimited, "waypoint limit"},
		{domain.BaselineEstimated, "estimated locally"},
		{domain.BaselineUnavailable, "no external directions provider"},
	}

	for _, tt := range tests {
		cmp := BuildComparison(
			domain.ScenarioMetrics{}, domain.ScenarioMetrics{}, domain.ScenarioMetrics{},
			tt.status, "", nil,
		)
		if !strings.Contains(cmp.Message, tt.want) {
			t.Errorf("status %s: message %q should mention %q", tt.status, cmp.Message, tt.want)
		}
	}
}

func TestBuildComparisonExplicitMessageWins(t *testing.T) {
	cmp := BuildComparison(
		domain.ScenarioMetrics{}, domain.ScenarioMetrics{}, domain.ScenarioMetrics{},
		domain.BaselineLimited, "Google limited to 23 stops", nil,
	)
	if cmp.Message != "Google limited to 23 stops" {
		t.Errorf("message = %q, want the explicit one", cmp.Message)
	}
}
