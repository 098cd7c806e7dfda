package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"route-optimizer-service/internal/adapters/ingest"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

const maxQuickVehicles = 20

// OptimizeHandler runs fleet optimization requests. Geometry and Repo are
// optional: geometry failures drop the display paths and a nil repository
// skips history persistence, neither affects the optimization result.
type OptimizeHandler struct {
	Optimizer *services.Optimizer
	Geometry  ports.GeometryProvider
	Repo      ports.ReportRepository
	Log       *logger.Logger
}

// Optimize handles POST /api/optimize with a full problem description:
// depot, deliveries, vehicles, objective, and an optional cost model.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}

	svcReq, err := toServiceRequest(req)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.run(w, r, svcReq)
}

// QuickOptimize handles POST /api/optimize/quick: a CSV manifest plus depot
// coordinates and a vehicle count in one multipart call, combining upload and
// optimize with defaults for every other knob.
func (h *OptimizeHandler) QuickOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	depotLat, err := strconv.ParseFloat(r.FormValue("depot_lat"), 64)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "depot_lat is required")
		return
	}
	depotLon, err := strconv.ParseFloat(r.FormValue("depot_lon"), 64)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "depot_lon is required")
		return
	}

	count := 3
	if raw := r.FormValue("vehicle_count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil || count < 1 || count > maxQuickVehicles {
			writeError(h.Log, w, r, http.StatusBadRequest,
				fmt.Sprintf("vehicle_count must be between 1 and %d", maxQuickVehicles))
			return
		}
	}
	capacity := 100.0
	if raw := r.FormValue("vehicle_capacity"); raw != "" {
		capacity, err = strconv.ParseFloat(raw, 64)
		if err != nil || capacity <= 0 {
			writeError(h.Log, w, r, http.StatusBadRequest, "vehicle_capacity must be > 0")
			return
		}
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, `multipart form must include a "file" part`)
		return
	}
	defer file.Close()

	stops, err := ingest.ParseDeliveries(file)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	objective, err := domain.ParseObjective(r.FormValue("objective"))
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.OptimizeRequest{
		Depot: domain.Depot{
			ID:       "depot",
			Location: domain.Coordinate{Lat: depotLat, Lon: depotLon},
		},
		Stops:     stops,
		Objective: objective,
	}
	for i := 0; i < count; i++ {
		svcReq.Vehicles = append(svcReq.Vehicles, domain.Vehicle{
			ID:          fmt.Sprintf("vehicle_%d", i+1),
			Name:        fmt.Sprintf("Vehicle %d", i+1),
			Capacity:    capacity,
			StartTime:   defaultStartTime,
			EndTime:     defaultEndTime,
			SpeedFactor: defaultSpeedFactor,
		})
	}

	h.run(w, r, svcReq)
}

func (h *OptimizeHandler) run(w http.ResponseWriter, r *http.Request, svcReq services.OptimizeRequest) {
	report, err := h.Optimizer.Optimize(r.Context(), svcReq)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	if report.Comparison != nil {
		metrics.OptimizationRuns.WithLabelValues(string(report.Comparison.SingleStatus)).Inc()
	}
	metrics.UnassignedStops.Add(float64(len(report.Unassigned)))
	metrics.OptimizationDuration.Observe(report.ComputationSeconds)

	paths := h.fetchPaths(r, svcReq, report)
	reportID := h.persist(r, svcReq, report)

	writeJSON(h.Log, w, r, http.StatusOK, toOptimizeResponse(report, paths, reportID))
}

// fetchPaths collects display geometry for each route. Failures are logged
// and dropped; the report ships without paths.
func (h *OptimizeHandler) fetchPaths(r *http.Request, svcReq services.OptimizeRequest, report *domain.OptimizationReport) []domain.RoutePath {
	if h.Geometry == nil {
		return nil
	}

	var paths []domain.RoutePath
	for _, route := range report.Routes {
		waypoints := make([]domain.Coordinate, 0, len(route.Stops)+2)
		waypoints = append(waypoints, svcReq.Depot.Location)
		for _, s := range route.Stops {
			waypoints = append(waypoints, s.Location)
		}
		waypoints = append(waypoints, svcReq.Depot.Location)

		path, err := h.Geometry.RoutePath(r.Context(), route.VehicleID, waypoints)
		if err != nil {
			if h.Log != nil {
				h.Log.WithError(err).WithField("vehicle_id", route.VehicleID).Debug("route geometry unavailable")
			}
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// persist stores the report for the history endpoints. A storage failure is
// logged and the response simply ships without a report id.
func (h *OptimizeHandler) persist(r *http.Request, svcReq services.OptimizeRequest, report *domain.OptimizationReport) string {
	if h.Repo == nil {
		return ""
	}

	entry := domain.HistoryEntry{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Depot:           svcReq.Depot,
		TotalDeliveries: len(svcReq.Stops),
		TotalRoutes:     len(report.Routes),
		TotalDistanceKm: report.TotalDistanceKm,
		TotalTime:       report.TotalTime,
		Report:          *report,
	}
	if report.Costs != nil {
		cost := report.Costs.TotalCost
		entry.TotalCost = &cost
	}

	if err := h.Repo.SaveReport(r.Context(), entry); err != nil {
		if h.Log != nil {
			h.Log.WithError(err).Error("save report failed")
		}
		return ""
	}
	return entry.ID
}
