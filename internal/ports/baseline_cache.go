package ports

import "context"

// BaselineCache caches external single-vehicle baseline results keyed by a
// request fingerprint, so repeated optimizations of the same stop set do not
// re-spend provider quota. A cache miss is (zero, false, nil).
type BaselineCache interface {
	Get(ctx context.Context, key string) (BaselineMetrics, bool, error)
	Put(ctx context.Context, key string, metrics BaselineMetrics) error
}
