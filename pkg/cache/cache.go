// Package cache provides the key-value store behind the stop-name cache.
//
// The interface is byte-oriented so that callers decide their own encoding.
// [MemoryCache] is the default: process-lifetime, unbounded and safe for
// concurrent use. [NullCache] disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key.
//
// A ttl of 0 passed to Set means the entry never expires. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
