// Package cache provides a small read-through cache for derived dashboard
// payloads. Correctness never depends on it: a miss or a broken backend just
// falls through to the repositories.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get unmarshals the cached value into dest, reporting whether the key
	// was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
