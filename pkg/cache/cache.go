// Package cache memoizes formatting results with a bounded LRU store
// and a per-key singleflight discipline: concurrent misses on the same
// key share one computation, misses on different keys proceed
// independently, and hits never wait on unrelated in-flight work.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Cache is a capacity-bounded memo table. The zero capacity form
// caches nothing and simply invokes the compute function.
//
// Cache is safe for concurrent use.
type Cache[V any] struct {
	store *lru.Cache[string, V]
	group singleflight.Group
}

// New returns a cache holding at most capacity entries, evicting the
// least recently used entry on overflow. capacity <= 0 disables
// caching entirely.
func New[V any](capacity int) *Cache[V] {
	c := &Cache[V]{}
	if capacity > 0 {
		// lru.New only fails for non-positive sizes.
		store, _ := lru.New[string, V](capacity)
		c.store = store
	}
	return c
}

// GetOrCompute returns the cached value for key, or runs compute
// exactly once across concurrent callers, stores the result, and
// returns it. compute errors are shared with waiting callers and not
// cached.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if c.store == nil {
		return compute()
	}

	if val, ok := c.store.Get(key); ok {
		return val, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		// A racing caller may have stored the value between our Get
		// and Do; the recheck keeps the computation at-most-once per
		// cached lifetime.
		if val, ok := c.store.Get(key); ok {
			return val, nil
		}
		val, err := compute()
		if err != nil {
			return val, err
		}
		c.store.Add(key, val)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Get returns the cached value without computing.
func (c *Cache[V]) Get(key string) (V, bool) {
	if c.store == nil {
		var zero V
		return zero, false
	}
	return c.store.Get(key)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	if c.store == nil {
		return 0
	}
	return c.store.Len()
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	if c.store != nil {
		c.store.Purge()
	}
}
