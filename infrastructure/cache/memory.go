// Package cache implements the in-process read cache behind the
// catalog, order, and dashboard endpoints, together with the tag-driven
// invalidation that keeps it consistent with store writes.
package cache

import (
	"context"
	"sync"
)

// MemoryCache is a process-wide string-keyed cache of serialized JSON
// values. There is no TTL and no eviction: an entry lives until an
// invalidation removes it or the process restarts.
//
// The mutex protects map integrity only. A concurrent
// check-query-populate sequence is not atomic: two requests for the
// same missing key may both query the store and both populate; the last
// writer wins, which is harmless because both computed the same value.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]string),
	}
}

// Has reports whether a key is present.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.items[key]
	return ok
}

// Get retrieves a cached value.
func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.items[key]
	return value, ok
}

// Set stores a value, overwriting unconditionally.
func (c *MemoryCache) Set(ctx context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
}

// DeleteMany removes each key if present. Absent keys are skipped
// silently.
func (c *MemoryCache) DeleteMany(ctx context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.items, key)
	}
}

// Len reports the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
