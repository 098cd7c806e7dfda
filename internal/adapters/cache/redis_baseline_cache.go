package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/ports"
)

// Baseline results stay valid as long as the road network does; the TTL just
// bounds staleness for moved depots and renamed stops.
const baselineTTL = 15 * time.Hour

// RedisBaselineCache stores external baseline metrics in Redis keyed by the
// request fingerprint. All errors are returned to the caller; providers treat
// cache failures as misses and log them at debug.
type RedisBaselineCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBaselineCache(client *redis.Client) *RedisBaselineCache {
	return &RedisBaselineCache{client: client, ttl: baselineTTL}
}

func (c *RedisBaselineCache) Get(ctx context.Context, key string) (ports.BaselineMetrics, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.BaselineMetrics{}, false, nil
	}
	if err != nil {
		return ports.BaselineMetrics{}, false, fmt.Errorf("cache get %q: %w", key, err)
	}

	var metrics ports.BaselineMetrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return ports.BaselineMetrics{}, false, fmt.Errorf("cache decode %q: %w", key, err)
	}
	return metrics, true, nil
}

func (c *RedisBaselineCache) Put(ctx context.Context, key string, metrics ports.BaselineMetrics) error {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("cache encode %q: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}
