package obs

import (
	"context"
	"time"

	"route-optimizer-service/internal/platform/logger"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time returns a deferred closer that logs the duration of the named
// operation, tagging the outcome with any error the caller assigned.
//
//	defer obs.Time(ctx, log, "directions.fetch")(&err)
func Time(ctx context.Context, log *logger.Logger, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		entry := log.WithFields(map[string]interface{}{
			"req_id": reqID,
			"op":     name,
			"dur_ms": time.Since(start).Milliseconds(),
		})

		if errp != nil && *errp != nil {
			entry.WithError(*errp).Warn("operation failed")
			return
		}
		entry.Debug("operation complete")
	}
}
