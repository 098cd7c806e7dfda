package dto

import "time"

type HistorySummaryResponse struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	DepotName       string    `json:"depot_name"`
	TotalDeliveries int       `json:"total_deliveries"`
	TotalRoutes     int       `json:"total_routes"`
	TotalDistanceKm float64   `json:"total_distance_km"`
	TotalTime       int       `json:"total_time_minutes"`
	TotalCost       *float64  `json:"total_cost,omitempty"`
}

type HistoryListResponse struct {
	Reports []HistorySummaryResponse `json:"reports"`
}

type HistoryDetailResponse struct {
	HistorySummaryResponse
	Report OptimizeResponse `json:"report"`
}
