package cache

import (
	"context"
	"time"
)

// Cache is the contract of the read-through cache used by the repositories.
// Implementations: Redis (infrastructure/cache). Repositories accept a nil
// Cache and then always go to the database.
type Cache interface {
	// Get loads key and unmarshals it into dest.
	// found = false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded unless it is already a string) with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern, e.g. "courses:<id>:*".
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
