// Package cache stores encoded mazes keyed by the parameters that produced
// them.
//
// Generation is deterministic for a fixed seed, so a seeded request can be
// answered from the cache without re-running the search. Three backends are
// provided: [FileCache] for the CLI, [RedisCache] for the server and
// [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
