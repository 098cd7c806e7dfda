package dto

// Wire-level shapes for the optimize endpoints. Optional numeric fields are
// pointers so "absent" and "zero" stay distinguishable and defaults apply
// only when a field was truly omitted.

type DepotRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type DeliveryRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	Notes           string   `json:"notes"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Demand          *float64 `json:"demand"`
	TimeWindowStart string   `json:"time_window_start"`
	TimeWindowEnd   string   `json:"time_window_end"`
	ServiceTime     *int     `json:"service_time"`
	Priority        *int     `json:"priority"`
}

type VehicleRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Capacity    *float64 `json:"capacity"`
	MaxStops    *int     `json:"max_stops"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	SpeedFactor *float64 `json:"speed_factor"`
}

type OptimizeRequest struct {
	Depot       DepotRequest      `json:"depot"`
	Deliveries  []DeliveryRequest `json:"deliveries"`
	Vehicles    []VehicleRequest  `json:"vehicles"`
	Objective   string            `json:"objective"`
	CostPerMile *float64          `json:"cost_per_mile"`
	CostPerHour *float64          `json:"cost_per_hour"`
}

type RouteStopResponse struct {
	Sequence             int     `json:"sequence"`
	DeliveryID           string  `json:"delivery_id"`
	CustomerName         string  `json:"customer_name"`
	CustomerPhone        string  `json:"customer_phone,omitempty"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	Address              string  `json:"address,omitempty"`
	ArrivalTime          string  `json:"arrival_time"`
	DepartureTime        string  `json:"departure_time"`
	CumulativeDistanceKm float64 `json:"cumulative_distance_km"`
	CumulativeLoad       float64 `json:"cumulative_load"`
	Directions           string  `json:"directions"`
}

type RouteResponse struct {
	VehicleID          string              `json:"vehicle_id"`
	VehicleName        string              `json:"vehicle_name"`
	Stops              []RouteStopResponse `json:"stops"`
	TotalDistanceKm    float64             `json:"total_distance_km"`
	TotalTimeMinutes   int                 `json:"total_time_minutes"`
	TotalLoad          float64             `json:"total_load"`
	UtilizationPercent float64             `json:"utilization_percent"`
}

type RoutePathResponse struct {
	VehicleID     string  `json:"vehicle_id"`
	Geometry      string  `json:"geometry"`
	RoadDistanceM float64 `json:"road_distance_m"`
	RoadDurationS float64 `json:"road_duration_s"`
}

type CostSummaryResponse struct {
	DistanceCost float64 `json:"distance_cost"`
	TimeCost     float64 `json:"time_cost"`
	TotalCost    float64 `json:"total_cost"`
}

type SavingsResponse struct {
	NaiveDistanceKm      float64  `json:"naive_distance_km"`
	NaiveTimeMinutes     int      `json:"naive_time_minutes"`
	OptimizedDistanceKm  float64  `json:"optimized_distance_km"`
	OptimizedTimeMinutes int      `json:"optimized_time_minutes"`
	DistanceSavedKm      float64  `json:"distance_saved_km"`
	TimeSavedMinutes     int      `json:"time_saved_minutes"`
	DistanceSavedPercent float64  `json:"distance_saved_percent"`
	TimeSavedPercent     float64  `json:"time_saved_percent"`
	MoneySaved           *float64 `json:"money_saved,omitempty"`
}

type ScenarioResponse struct {
	TotalDistanceKm  float64  `json:"total_distance_km"`
	TotalTimeMinutes int      `json:"total_time_minutes"`
	VehicleCount     int      `json:"vehicle_count"`
	TotalCost        *float64 `json:"total_cost,omitempty"`
}

type ComparisonResponse struct {
	Manual              ScenarioResponse `json:"manual"`
	SingleVehicle       ScenarioResponse `json:"single_vehicle"`
	Fleet               ScenarioResponse `json:"fleet"`
	SingleVehicleStatus string           `json:"single_vehicle_status"`
	Message             string           `json:"message"`
}

type OptimizeResponse struct {
	Success              bool                 `json:"success"`
	Message              string               `json:"message"`
	Routes               []RouteResponse      `json:"routes"`
	RoutePaths           []RoutePathResponse  `json:"route_paths,omitempty"`
	UnassignedDeliveries []string             `json:"unassigned_deliveries"`
	TotalDistanceKm      float64              `json:"total_distance_km"`
	TotalTimeMinutes     int                  `json:"total_time_minutes"`
	ComputationSeconds   float64              `json:"computation_time_seconds"`
	Costs                *CostSummaryResponse `json:"costs,omitempty"`
	Savings              *SavingsResponse     `json:"savings,omitempty"`
	Comparison           *ComparisonResponse  `json:"comparison,omitempty"`
	ReportID             string               `json:"report_id,omitempty"`
}
