// Package cache stores solved layouts and rendered artifacts by content key.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [MemoryCache]: process-local, used by the preview and tests
//   - [RedisCache]: shared cache for the API server
//   - [MongoCache]: durable store for solved layouts
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] so that every backend sees the same key for the
// same document and solve options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil). A ttl of zero never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
