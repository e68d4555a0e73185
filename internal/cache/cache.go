// Package cache provides the small in-process caches backing the
// read-heavy aggregate views. Keys are structured tuples rather than
// concatenated strings, and each cache declares its eviction policy up
// front: the accounting caches run with no TTL and no eviction
// (entries are date-range aggregates and a process restart is the
// accepted invalidation), the leaderboard cache expires after five
// minutes.
package cache

import (
	"sync"
	"time"
)

// Key identifies one cached aggregate: which report, over which
// inclusive date range. Comparable, so it can key a map directly.
type Key struct {
	Report string
	From   string
	To     string
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a concurrency-safe map from Key to V with an optional TTL.
// A zero TTL means entries never expire.
type Cache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Key]entry[V]
}

// New constructs a cache with the given TTL (0 = keep forever).
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Key]entry[V]),
	}
}

// NewWithClock is New with an injected clock, for tests.
func NewWithClock[V any](ttl time.Duration, now func() time.Time) *Cache[V] {
	c := New[V](ttl)
	c.now = now
	return c
}

// Get returns the cached value for k when present and, if a TTL is
// set, not yet expired. Expired entries are dropped on read; there is
// no background sweeper.
func (c *Cache[V]) Get(k Key) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		// Re-read under the write lock: a concurrent Set may have
		// refreshed the entry between the read and here, and that
		// fresh value must survive.
		c.mu.Lock()
		if cur, ok := c.entries[k]; ok && c.now().Sub(cur.storedAt) > c.ttl {
			delete(c.entries, k)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores v under k, replacing any previous entry.
func (c *Cache[V]) Set(k Key, v V) {
	c.mu.Lock()
	c.entries[k] = entry[V]{value: v, storedAt: c.now()}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
