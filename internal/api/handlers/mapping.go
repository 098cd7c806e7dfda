package handlers

import (
	"fmt"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

// Request-side defaults. These mirror the CSV ingest defaults so a delivery
// arrives with the same shape whether it came from JSON or a spreadsheet.
const (
	defaultDemand      = 1.0
	defaultServiceTime = 5
	defaultPriority    = 1

	defaultCapacity    = 10.0
	defaultSpeedFactor = 1.0
	defaultStartTime   = "08:00"
	defaultEndTime     = "18:00"
)

func toServiceRequest(req dto.OptimizeRequest) (services.OptimizeRequest, error) {
	objective, err := domain.ParseObjective(req.Objective)
	if err != nil {
		return services.OptimizeRequest{}, err
	}

	out := services.OptimizeRequest{
		Depot: domain.Depot{
			ID:       orDefault(req.Depot.ID, "depot"),
			Name:     req.Depot.Name,
			Address:  req.Depot.Address,
			Location: domain.Coordinate{Lat: req.Depot.Latitude, Lon: req.Depot.Longitude},
		},
		Objective: objective,
	}

	for i, d := range req.Deliveries {
		stop := domain.Stop{
			ID:              orDefault(d.ID, fmt.Sprintf("delivery_%d", i+1)),
			Name:            d.Name,
			Phone:           d.Phone,
			Notes:           d.Notes,
			Address:         d.Address,
			Location:        domain.Coordinate{Lat: d.Latitude, Lon: d.Longitude},
			Demand:          defaultDemand,
			TimeWindowStart: d.TimeWindowStart,
			TimeWindowEnd:   d.TimeWindowEnd,
			ServiceTime:     defaultServiceTime,
			Priority:        defaultPriority,
		}
		if stop.Name == "" {
			stop.Name = stop.ID
		}
		if d.Demand != nil {
			stop.Demand = *d.Demand
		}
		if d.ServiceTime != nil {
			stop.ServiceTime = *d.ServiceTime
		}
		if d.Priority != nil {
			stop.Priority = *d.Priority
		}
		out.Stops = append(out.Stops, stop)
	}

	for i, v := range req.Vehicles {
		vehicle := domain.Vehicle{
			ID:          orDefault(v.ID, fmt.Sprintf("vehicle_%d", i+1)),
			Name:        v.Name,
			Capacity:    defaultCapacity,
			StartTime:   orDefault(v.StartTime, defaultStartTime),
			EndTime:     orDefault(v.EndTime, defaultEndTime),
			SpeedFactor: defaultSpeedFactor,
		}
		if vehicle.Name == "" {
			vehicle.Name = fmt.Sprintf("Vehicle %d", i+1)
		}
		if v.Capacity != nil {
			vehicle.Capacity = *v.Capacity
		}
		if v.MaxStops != nil {
			vehicle.MaxStops = *v.MaxStops
		}
		if v.SpeedFactor != nil {
			vehicle.SpeedFactor = *v.SpeedFactor
		}
		out.Vehicles = append(out.Vehicles, vehicle)
	}

	if req.CostPerMile != nil || req.CostPerHour != nil {
		model := domain.CostModel{}
		if req.CostPerMile != nil {
			model.CostPerMile = *req.CostPerMile
		}
		if req.CostPerHour != nil {
			model.CostPerHour = *req.CostPerHour
		}
		out.CostModel = &model
	}

	return out, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func toOptimizeResponse(report *domain.OptimizationReport, paths []domain.RoutePath, reportID string) dto.OptimizeResponse {
	out := dto.OptimizeResponse{
		Success:              report.Success,
		Message:              report.Message,
		Routes:               make([]dto.RouteResponse, 0, len(report.Routes)),
		UnassignedDeliveries: report.Unassigned,
		TotalDistanceKm:      report.TotalDistanceKm,
		TotalTimeMinutes:     report.TotalTime,
		ComputationSeconds:   report.ComputationSeconds,
		ReportID:             reportID,
	}
	if out.UnassignedDeliveries == nil {
		out.UnassignedDeliveries = []string{}
	}

	for _, route := range report.Routes {
		stops := make([]dto.RouteStopResponse, 0, len(route.Stops))
		for _, s := range route.Stops {
			stops = append(stops, dto.RouteStopResponse{
				Sequence:             s.Sequence,
				DeliveryID:           s.StopID,
				CustomerName:         s.CustomerName,
				CustomerPhone:        s.CustomerPhone,
				Latitude:             s.Location.Lat,
				Longitude:            s.Location.Lon,
				Address:              s.Address,
				ArrivalTime:          s.ArrivalTime,
				DepartureTime:        s.DepartureTime,
				CumulativeDistanceKm: s.CumulativeDistanceKm,
				CumulativeLoad:       s.CumulativeLoad,
				Directions:           s.Directions,
			})
		}
		out.Routes = append(out.Routes, dto.RouteResponse{
			VehicleID:          route.VehicleID,
			VehicleName:        route.VehicleName,
			Stops:              stops,
			TotalDistanceKm:    route.TotalDistanceKm,
			TotalTimeMinutes:   route.TotalTime,
			TotalLoad:          route.TotalLoad,
			UtilizationPercent: route.Utilization,
		})
	}

	for _, p := range paths {
		out.RoutePaths = append(out.RoutePaths, dto.RoutePathResponse{
			VehicleID:     p.VehicleID,
			Geometry:      p.Geometry,
			RoadDistanceM: p.RoadDistanceM,
			RoadDurationS: p.RoadDurationS,
		})
	}

	if report.Costs != nil {
		out.Costs = &dto.CostSummaryResponse{
			DistanceCost: report.Costs.DistanceCost,
			TimeCost:     report.Costs.TimeCost,
			TotalCost:    report.Costs.TotalCost,
		}
	}
	if report.Savings != nil {
		out.Savings = &dto.SavingsResponse{
			NaiveDistanceKm:      report.Savings.NaiveDistanceKm,
			NaiveTimeMinutes:     report.Savings.NaiveTime,
			OptimizedDistanceKm:  report.Savings.OptimizedDistanceKm,
			OptimizedTimeMinutes: report.Savings.OptimizedTime,
			DistanceSavedKm:      report.Savings.DistanceSavedKm,
			TimeSavedMinutes:     report.Savings.TimeSaved,
			DistanceSavedPercent: report.Savings.DistanceSavedPercent,
			TimeSavedPercent:     report.Savings.TimeSavedPercent,
			MoneySaved:           report.Savings.MoneySaved,
		}
	}
	if report.Comparison != nil {
		out.Comparison = &dto.ComparisonResponse{
			Manual:              toScenarioResponse(report.Comparison.Manual),
			SingleVehicle:       toScenarioResponse(report.Comparison.SingleVehicle),
			Fleet:               toScenarioResponse(report.Comparison.Fleet),
			SingleVehicleStatus: string(report.Comparison.SingleStatus),
			Message:             report.Comparison.Message,
		}
	}

	return out
}

func toScenarioResponse(s domain.ScenarioMetrics) dto.ScenarioResponse {
	return dto.ScenarioResponse{
		TotalDistanceKm:  s.DistanceKm,
		TotalTimeMinutes: s.TimeMinutes,
		VehicleCount:     s.VehicleCount,
		TotalCost:        s.TotalCost,
	}
}

func toHistorySummary(entry domain.HistoryEntry) dto.HistorySummaryResponse {
	return dto.HistorySummaryResponse{
		ID:              entry.ID,
		CreatedAt:       entry.CreatedAt,
		DepotName:       entry.Depot.Name,
		TotalDeliveries: entry.TotalDeliveries,
		TotalRoutes:     entry.TotalRoutes,
		TotalDistanceKm: entry.TotalDistanceKm,
		TotalTime:       entry.TotalTime,
		TotalCost:       entry.TotalCost,
	}
}

func toDeliveryRequest(s domain.Stop) dto.DeliveryRequest {
	demand := s.Demand
	service := s.ServiceTime
	priority := s.Priority
	return dto.DeliveryRequest{
		ID:              s.ID,
		Name:            s.Name,
		Phone:           s.Phone,
		Notes:           s.Notes,
		Address:         s.Address,
		Latitude:        s.Location.Lat,
		Longitude:       s.Location.Lon,
		Demand:          &demand,
		TimeWindowStart: s.TimeWindowStart,
		TimeWindowEnd:   s.TimeWindowEnd,
		ServiceTime:     &service,
		Priority:        &priority,
	}
}
