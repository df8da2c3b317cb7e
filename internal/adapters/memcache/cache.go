// Package memcache is the in-process TTL cache: one instance lives for
// the process and is injected into each domain service. Entries past
// their TTL read as misses but stay in place until the next Set
// overwrites them; there is no size bound or eviction.
package memcache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"hotel_gateway/internal/adapters/observability"
	"hotel_gateway/internal/domain"
)

type entry struct {
	body     []byte
	storedAt time.Time
	ttl      time.Duration
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	now func() time.Time // swappable in tests
}

var _ domain.Cache = (*Cache)(nil)

func New() *Cache {
	return &Cache{entries: map[string]entry{}, now: time.Now}
}

// Get decodes the cached value into dst when a fresh entry exists.
// Concurrent misses for one key both fall through to the network; the
// resulting duplicate fetch is accepted (idempotent reads, last Set
// wins).
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.storedAt) >= e.ttl {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.body, dst)
}

// Set stores v unconditionally, replacing any prior entry. Values are
// kept as JSON so cached data cannot alias the caller's slices.
func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = entry{body: b, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	observability.ObserveCache("memory", "del")
	return nil
}
