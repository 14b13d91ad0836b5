package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache and prefixes every key, so that several kinds of
// value can share one store without colliding.
//
//	names := cache.NewScoped(store, "stop_name:")
//	names.Set(ctx, "490005432S2", []byte("Oxford Circus"), 0) // key "stop_name:490005432S2"
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of inner. A nil inner is replaced by a
// NullCache.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Prefix returns the key prefix applied by this view.
func (s *Scoped) Prefix() string { return s.prefix }

// Get retrieves a prefixed key from the wrapped cache.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores a prefixed key in the wrapped cache.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a prefixed key from the wrapped cache.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the wrapped cache.
func (s *Scoped) Close() error {
	return s.inner.Close()
}

var _ Cache = (*Scoped)(nil)
