package geometry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
)

// ORSGeometryProvider fetches road-following display geometry for a route
// from the OpenRouteService directions API. Geometry is cosmetic: callers
// drop it on failure rather than failing the optimization.
type ORSGeometryProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
	log     *logger.Logger
}

func NewORSGeometryProvider(apiKey string, log *logger.Logger) *ORSGeometryProvider {
	if log == nil {
		log = logger.New("error")
	}
	return &ORSGeometryProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.openrouteservice.org/v2/directions/driving-car",
		apiKey:  strings.TrimSpace(apiKey),
		log:     log,
	}
}

func (o *ORSGeometryProvider) Configured() bool { return o.apiKey != "" }

type orsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type orsResponse struct {
	Routes []struct {
		Geometry string `json:"geometry"`
		Summary  struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// RoutePath returns the encoded polyline for the given waypoints in order,
// with the road distance in meters and duration in seconds.
func (o *ORSGeometryProvider) RoutePath(
	ctx context.Context,
	vehicleID string,
	waypoints []domain.Coordinate,
) (domain.RoutePath, error) {
	if !o.Configured() {
		return domain.RoutePath{}, ports.ErrNotConfigured
	}
	if len(waypoints) < 2 {
		return domain.RoutePath{}, fmt.Errorf("route path needs at least 2 waypoints, got %d", len(waypoints))
	}

	coords := make([][]float64, 0, len(waypoints))
	for _, wp := range waypoints {
		coords = append(coords, wp.LonLat())
	}

	body, err := json.Marshal(orsRequest{Coordinates: coords})
	if err != nil {
		return domain.RoutePath{}, fmt.Errorf("encode geometry request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(body))
	if err != nil {
		return domain.RoutePath{}, fmt.Errorf("build geometry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", o.apiKey)

	resp, err := o.session.Do(req)
	if err != nil {
		return domain.RoutePath{}, fmt.Errorf("geometry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RoutePath{}, fmt.Errorf("geometry status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed orsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.RoutePath{}, fmt.Errorf("decode geometry response: %w", err)
	}
	if len(parsed.Routes) == 0 {
		return domain.RoutePath{}, fmt.Errorf("geometry response has no routes")
	}

	found := parsed.Routes[0]
	return domain.RoutePath{
		VehicleID:     vehicleID,
		Geometry:      found.Geometry,
		RoadDistanceM: found.Summary.Distance,
		RoadDurationS: found.Summary.Duration,
	}, nil
}
