package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key inside a fixed window.
type Store interface {
	// Incr bumps the counter for key, starting the window on first hit.
	// It returns the count after the bump and the time left in the window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}
