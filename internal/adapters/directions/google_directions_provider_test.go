package directions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
)

func testProvider(t *testing.T, handler http.HandlerFunc) *GoogleDirectionsProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewGoogleDirectionsProvider("test-key", nil, logger.New("error"))
	p.baseURL = srv.URL
	return p
}

func testDepot() domain.Depot {
	return domain.Depot{ID: "depot", Location: domain.Coordinate{Lat: 37.77, Lon: -122.41}}
}

func testStops(n int) []domain.Stop {
	stops := make([]domain.Stop, 0, n)
	for i := 0; i < n; i++ {
		stops = append(stops, domain.Stop{
			ID:       fmt.Sprintf("s%d", i),
			Location: domain.Coordinate{Lat: 37.77 + float64(i)*0.01, Lon: -122.41},
		})
	}
	return stops
}

func directionsPayload(legs int, meters, seconds float64) string {
	leg := fmt.Sprintf(`{"distance":{"value":%f},"duration":{"value":%f}}`, meters, seconds)
	body := leg
	for i := 1; i < legs; i++ {
		body += "," + leg
	}
	return fmt.Sprintf(`{"status":"OK","routes":[{"legs":[%s]}]}`, body)
}

func TestSingleVehicleBaselineSumsLegs(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		fmt.Fprint(w, directionsPayload(3, 5000, 600))
	})

	m, err := p.SingleVehicleBaseline(context.Background(), testDepot(), testStops(2))
	if err != nil {
		t.Fatalf("SingleVehicleBaseline: %v", err)
	}
	if m.DistanceKm != 15 {
		t.Errorf("DistanceKm = %v, want 15", m.DistanceKm)
	}
	if m.TimeMinutes != 30 {
		t.Errorf("TimeMinutes = %v, want 30", m.TimeMinutes)
	}
	if m.Limited {
		t.Error("Limited = true for a small stop set")
	}
}

func TestSingleVehicleBaselineTruncatesWaypoints(t *testing.T) {
	var gotWaypoints string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotWaypoints = r.URL.Query().Get("waypoints")
		fmt.Fprint(w, directionsPayload(24, 1000, 60))
	})

	m, err := p.SingleVehicleBaseline(context.Background(), testDepot(), testStops(30))
	if err != nil {
		t.Fatalf("SingleVehicleBaseline: %v", err)
	}
	if !m.Limited || m.LimitedTo != maxWaypoints {
		t.Errorf("Limited=%v LimitedTo=%d, want true/%d", m.Limited, m.LimitedTo, maxWaypoints)
	}

	// optimize:true plus the capped stop list, pipe separated.
	wantParts := 1 + maxWaypoints
	if got := 1 + countPipes(gotWaypoints); got != wantParts {
		t.Errorf("waypoint parts = %d, want %d", got, wantParts)
	}
}

func countPipes(s string) int {
	n := 0
	for _, r := range s {
		if r == '|' {
			n++
		}
	}
	return n
}

func TestSingleVehicleBaselineNilLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, directionsPayload(2, 1000, 120))
	}))
	t.Cleanup(srv.Close)

	p := NewGoogleDirectionsProvider("test-key", nil, nil)
	p.baseURL = srv.URL

	if _, err := p.SingleVehicleBaseline(context.Background(), testDepot(), testStops(1)); err != nil {
		t.Fatalf("SingleVehicleBaseline with nil logger: %v", err)
	}
}

func TestSingleVehicleBaselineAPIError(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OVER_QUERY_LIMIT","error_message":"quota exceeded","routes":[]}`)
	})

	if _, err := p.SingleVehicleBaseline(context.Background(), testDepot(), testStops(2)); err == nil {
		t.Fatal("expected error for non-OK api status")
	}
}

func TestSingleVehicleBaselineNotConfigured(t *testing.T) {
	p := NewGoogleDirectionsProvider("", nil, logger.New("error"))

	_, err := p.SingleVehicleBaseline(context.Background(), testDepot(), testStops(1))
	if !errors.Is(err, ports.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSingleVehicleBaselineEmptyStops(t *testing.T) {
	p := NewGoogleDirectionsProvider("test-key", nil, logger.New("error"))

	m, err := p.SingleVehicleBaseline(context.Background(), testDepot(), nil)
	if err != nil {
		t.Fatalf("SingleVehicleBaseline: %v", err)
	}
	if m.DistanceKm != 0 || m.TimeMinutes != 0 {
		t.Errorf("metrics = %+v, want zero", m)
	}
}
