package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"route-optimizer-service/internal/domain"
)

type directionsResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message"`
	Routes       []directionsRoute `json:"routes"`
}

type directionsRoute struct {
	Legs []directionsLeg `json:"legs"`
}

type directionsLeg struct {
	Distance valueField `json:"distance"`
	Duration valueField `json:"duration"`
}

type valueField struct {
	Value float64 `json:"value"`
}

// fetchOptimizedRoute makes a single directions request and sums the legs.
// Distance comes back in meters, duration in seconds. There are no retries:
// any failure surfaces to the caller, which degrades to a local estimate.
func (g *GoogleDirectionsProvider) fetchOptimizedRoute(
	ctx context.Context,
	depot domain.Depot,
	stops []domain.Stop,
) (meters, seconds float64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.requestURL(depot, stops), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.session.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, 0, fmt.Errorf("directions status %d: %s", resp.StatusCode, string(body))
	}

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("decode directions response: %w", err)
	}
	if payload.Status != "OK" {
		return 0, 0, fmt.Errorf("directions api status %q: %s", payload.Status, payload.ErrorMessage)
	}
	if len(payload.Routes) == 0 {
		return 0, 0, fmt.Errorf("directions api returned no routes")
	}

	for _, leg := range payload.Routes[0].Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
	}
	return meters, seconds, nil
}
