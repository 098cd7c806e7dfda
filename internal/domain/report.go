package domain

import "time"

// CostModel converts distance and time into dollars. Distance cost is
// per-mile; time cost is per-hour.
type CostModel struct {
	CostPerMile float64
	CostPerHour float64
}

// Cost computes the total dollar cost of driving the given distance for the
// given number of minutes.
func (m CostModel) Cost(distanceKm float64, minutes int) float64 {
	return KmToMiles(distanceKm)*m.CostPerMile + float64(minutes)/60*m.CostPerHour
}

// BaselineStatus records how the single-vehicle comparison figure was
// obtained, so downstream reporting can disclose data provenance.
type BaselineStatus string

const (
	// BaselineExternal: an external directions provider returned an
	// authoritative optimized single-vehicle figure.
	BaselineExternal BaselineStatus = "google"
	// BaselineLimited: the external provider's waypoint ceiling was exceeded
	// and the stop set was truncated before the call.
	BaselineLimited BaselineStatus = "google_limited"
	// BaselineEstimated: the external call failed and the figure is a local
	// nearest-neighbor estimate.
	BaselineEstimated BaselineStatus = "estimated"
	// BaselineUnavailable: no external source is configured; the figure is a
	// local nearest-neighbor estimate.
	BaselineUnavailable BaselineStatus = "unavailable"
)

// ScenarioMetrics describes one comparison scenario: total travel distance
// and time, the number of vehicles involved, and the dollar cost when a cost
// model was supplied (nil otherwise).
type ScenarioMetrics struct {
	DistanceKm   float64
	TimeMinutes  int
	VehicleCount int
	TotalCost    *float64
}

// Comparison places the unoptimized, single-optimized-vehicle, and fleet
// scenarios side by side.
type Comparison struct {
	Manual        ScenarioMetrics
	SingleVehicle ScenarioMetrics
	Fleet         ScenarioMetrics
	SingleStatus  BaselineStatus
	Message       string
}

// CostSummary breaks the fleet scenario's dollar cost into its distance and
// time components.
type CostSummary struct {
	DistanceCost float64
	TimeCost     float64
	TotalCost    float64
}

// SavingsSummary quantifies what the fleet plan saves versus visiting every
// stop in input order with one vehicle.
type SavingsSummary struct {
	NaiveDistanceKm      float64
	NaiveTime            int
	OptimizedDistanceKm  float64
	OptimizedTime        int
	DistanceSavedKm      float64
	TimeSaved            int
	DistanceSavedPercent float64
	TimeSavedPercent     float64
	MoneySaved           *float64
}

// OptimizationReport is the complete result of one optimize run. Every input
// stop id appears in exactly one route or in Unassigned, never both, never
// neither.
type OptimizationReport struct {
	Success            bool
	Message            string
	Routes             []Route
	Unassigned         []string
	TotalDistanceKm    float64
	TotalTime          int
	ComputationSeconds float64
	Costs              *CostSummary
	Savings            *SavingsSummary
	Comparison         *Comparison
}

// HistoryEntry is a persisted optimization report with summary fields
// denormalized for listing.
type HistoryEntry struct {
	ID              string
	CreatedAt       time.Time
	Depot           Depot
	TotalDeliveries int
	TotalRoutes     int
	TotalDistanceKm float64
	TotalTime       int
	TotalCost       *float64
	Report          OptimizationReport
}
