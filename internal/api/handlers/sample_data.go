package handlers

import (
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/logger"
)

// SampleDataHandler serves a canned optimize request so the API can be tried
// without assembling a payload by hand.
type SampleDataHandler struct {
	Log *logger.Logger
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

// Sample handles GET /api/sample-data. The payload is a small downtown
// San Francisco scenario that feeds straight into POST /api/optimize.
func (h *SampleDataHandler) Sample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sample := dto.OptimizeRequest{
		Depot: dto.DepotRequest{
			ID:        "depot",
			Name:      "Main Warehouse",
			Address:   "100 Mission St, San Francisco, CA",
			Latitude:  37.7749,
			Longitude: -122.4194,
		},
		Deliveries: []dto.DeliveryRequest{
			{ID: "delivery_1", Name: "Ferry Building Market", Address: "1 Ferry Building", Latitude: 37.7955, Longitude: -122.3937, Demand: ptrF(2), TimeWindowStart: "09:00", TimeWindowEnd: "12:00", ServiceTime: ptrI(10), Priority: ptrI(1)},
			{ID: "delivery_2", Name: "Mission Dolores Cafe", Address: "3321 16th St", Latitude: 37.7648, Longitude: -122.4268, Demand: ptrF(3), TimeWindowStart: "09:00", TimeWindowEnd: "14:00", ServiceTime: ptrI(5), Priority: ptrI(2)},
			{ID: "delivery_3", Name: "Marina Green Deli", Address: "3499 Marina Blvd", Latitude: 37.8063, Longitude: -122.4430, Demand: ptrF(1), TimeWindowStart: "10:00", TimeWindowEnd: "16:00", ServiceTime: ptrI(5), Priority: ptrI(3)},
			{ID: "delivery_4", Name: "Sunset Grocery", Address: "1245 9th Ave", Latitude: 37.7652, Longitude: -122.4661, Demand: ptrF(4), TimeWindowStart: "08:30", TimeWindowEnd: "13:00", ServiceTime: ptrI(15), Priority: ptrI(1)},
			{ID: "delivery_5", Name: "Potrero Hill Books", Address: "1579 18th St", Latitude: 37.7625, Longitude: -122.3971, Demand: ptrF(2), TimeWindowStart: "11:00", TimeWindowEnd: "17:00", ServiceTime: ptrI(5), Priority: ptrI(2)},
		},
		Vehicles: []dto.VehicleRequest{
			{ID: "vehicle_1", Name: "Truck A", Capacity: ptrF(8), StartTime: "08:00", EndTime: "18:00", SpeedFactor: ptrF(1.0)},
			{ID: "vehicle_2", Name: "Van B", Capacity: ptrF(5), MaxStops: ptrI(3), StartTime: "09:00", EndTime: "17:00", SpeedFactor: ptrF(1.2)},
		},
		Objective:   "minimize_distance",
		CostPerMile: ptrF(0.65),
		CostPerHour: ptrF(22.0),
	}

	writeJSON(h.Log, w, r, http.StatusOK, sample)
}
