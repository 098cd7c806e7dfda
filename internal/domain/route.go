package domain

// RouteStop is a single committed stop in a vehicle's ordered route.
// Sequence is 1-based; cumulative distance and load are monotonically
// non-decreasing along the route by construction.
type RouteStop struct {
	Sequence             int
	StopID               string
	CustomerName         string
	CustomerPhone        string
	Location             Coordinate
	Address              string
	ArrivalTime          string // clock-of-day "HH:MM"
	DepartureTime        string
	CumulativeDistanceKm float64
	CumulativeLoad       float64
	Directions           string // advisory compass hint, never navigation-grade
}

// Route is the planned delivery route for a single vehicle, including the
// return leg to the depot in its totals.
type Route struct {
	VehicleID       string
	VehicleName     string
	Stops           []RouteStop
	TotalDistanceKm float64
	TotalTime       int // minutes, including the return leg
	TotalLoad       float64
	Utilization     float64 // load/capacity as a percentage, <= 100 by construction
}

// RoutePath is a road-following display geometry for one route, produced by
// an external geometry provider. It has zero influence on any computed
// distance, time, cost, or feasibility decision.
type RoutePath struct {
	VehicleID     string
	Geometry      string // encoded polyline, empty when unavailable
	RoadDistanceM float64
	RoadDurationS float64
}
