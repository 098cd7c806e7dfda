package directions

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// Google's directions API caps the waypoints of a single request. Stop sets
// above the cap are truncated and the result is flagged as limited.
const maxWaypoints = 23

// GoogleDirectionsProvider implements the single-vehicle baseline using the
// Google Directions API with waypoint optimization.
//
// Calls are one-shot with an explicit client timeout: the baseline only
// affects comparison quality, so the provider fails fast and callers fall
// back to the local estimate. A shared rate limiter keeps the provider
// inside free-tier request quotas. The provider is safe for concurrent use.
type GoogleDirectionsProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	cache   ports.BaselineCache
	log     *logger.Logger
}

func NewGoogleDirectionsProvider(apiKey string, cache ports.BaselineCache, log *logger.Logger) *GoogleDirectionsProvider {
	if log == nil {
		log = logger.New("error")
	}
	return &GoogleDirectionsProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: "https://maps.googleapis.com/maps/api/directions/json",
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		cache:   cache,
		log:     log,
	}
}

// SingleVehicleBaseline fetches the optimized one-vehicle distance/time for
// depot -> stops -> depot. Stop sets beyond the waypoint cap are truncated
// before the call and the result is marked limited.
func (g *GoogleDirectionsProvider) SingleVehicleBaseline(
	ctx context.Context,
	depot domain.Depot,
	stops []domain.Stop,
) (_ ports.BaselineMetrics, err error) {
	if g.apiKey == "" {
		return ports.BaselineMetrics{}, ports.ErrNotConfigured
	}
	if len(stops) == 0 {
		return ports.BaselineMetrics{}, nil
	}

	defer obs.Time(ctx, g.log, "directions.SingleVehicleBaseline")(&err)

	limited := false
	use := stops
	if len(use) > maxWaypoints {
		use = use[:maxWaypoints]
		limited = true
	}

	key := requestKey(depot, use)
	if g.cache != nil {
		cached, ok, cacheErr := g.cache.Get(ctx, key)
		if cacheErr != nil {
			g.log.WithError(cacheErr).Debug("baseline cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return ports.BaselineMetrics{}, fmt.Errorf("directions rate limit wait: %w", err)
	}

	meters, seconds, err := g.fetchOptimizedRoute(ctx, depot, use)
	if err != nil {
		return ports.BaselineMetrics{}, fmt.Errorf("directions baseline: %w", err)
	}

	metrics := ports.BaselineMetrics{
		DistanceKm:  meters / 1000,
		TimeMinutes: int(seconds / 60),
		Limited:     limited,
	}
	if limited {
		metrics.LimitedTo = maxWaypoints
	}

	if g.cache != nil {
		if cacheErr := g.cache.Put(ctx, key, metrics); cacheErr != nil {
			g.log.WithError(cacheErr).Debug("baseline cache write failed")
		}
	}

	return metrics, nil
}

// waypointParam formats the intermediate stops for the directions request,
// asking the provider to reorder them optimally.
func waypointParam(stops []domain.Stop) string {
	parts := make([]string, 0, 1+len(stops))
	parts = append(parts, "optimize:true")
	for _, s := range stops {
		parts = append(parts, fmt.Sprintf("%f,%f", s.Location.Lat, s.Location.Lon))
	}
	return strings.Join(parts, "|")
}

func (g *GoogleDirectionsProvider) requestURL(depot domain.Depot, stops []domain.Stop) string {
	origin := fmt.Sprintf("%f,%f", depot.Location.Lat, depot.Location.Lon)

	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", origin)
	q.Set("waypoints", waypointParam(stops))
	q.Set("key", g.apiKey)

	return g.baseURL + "?" + q.Encode()
}

// requestKey fingerprints a depot + stop set so identical baseline requests
// hit the cache instead of spending provider quota.
func requestKey(depot domain.Depot, stops []domain.Stop) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%f,%f", depot.Location.Lat, depot.Location.Lon)
	for _, s := range stops {
		fmt.Fprintf(&b, "|%f,%f", s.Location.Lat, s.Location.Lon)
	}

	sum := sha1.Sum([]byte(b.String()))
	return "baseline:" + hex.EncodeToString(sum[:])
}
