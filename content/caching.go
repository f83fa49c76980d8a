package content

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a cache entry stays valid unless configured
// otherwise.
const DefaultTTL = 5 * time.Minute

// CachingStore wraps a Store and caches fetched content per path with a
// fixed TTL. A TTL of 0 disables caching entirely. Expired entries are
// transparently refetched on the next Fetch, not actively evicted.
//
// Uses singleflight to coalesce duplicate requests, preventing thundering
// herd on cache miss without holding locks during the backing fetch. The
// cache is purely an optimization: correctness never depends on the TTL.
type CachingStore struct {
	store Store
	ttl   time.Duration

	mu      sync.RWMutex
	sf      singleflight.Group
	entries map[string]*cacheEntry
}

// cacheEntry holds cached data with the time it was fetched.
type cacheEntry struct {
	data      []byte
	fetchedAt time.Time
}

// NewCachingStore creates a CachingStore wrapping the given store.
// A ttl of 0 disables caching.
func NewCachingStore(store Store, ttl time.Duration) *CachingStore {
	return &CachingStore{
		store:   store,
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

// valid reports whether the entry exists and hasn't outlived the TTL.
func (e *cacheEntry) valid(ttl time.Duration) bool {
	return e != nil && time.Since(e.fetchedAt) < ttl
}

// Fetch returns the content for path, serving from cache when a valid entry
// exists. The returned slice must not be modified by callers: on a cache hit
// the same slice is returned to every caller.
func (c *CachingStore) Fetch(path string) ([]byte, error) {
	// Fast path: check cache with read lock
	if c.ttl > 0 {
		c.mu.RLock()
		entry := c.entries[path]
		c.mu.RUnlock()

		if entry.valid(c.ttl) {
			return entry.data, nil
		}
	}

	// Slow path: coalesce duplicate fetches for the same path so only one
	// backing request runs even when several misses race.
	result, err, _ := c.sf.Do(path, func() (interface{}, error) {
		data, err := c.store.Fetch(path)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[path] = &cacheEntry{data: data, fetchedAt: time.Now()}
			c.mu.Unlock()
		}

		return data, nil
	})

	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Invalidate drops the cache entry for a single path.
func (c *CachingStore) Invalidate(path string) {
	if c.ttl > 0 {
		c.mu.Lock()
		delete(c.entries, path)
		c.mu.Unlock()
	}
}

// InvalidateAll clears the whole cache. Called on content refresh and used
// by tests to force-expire entries.
func (c *CachingStore) InvalidateAll() {
	if c.ttl > 0 {
		c.mu.Lock()
		c.entries = make(map[string]*cacheEntry)
		c.mu.Unlock()
	}
}

// Expire backdates the entry for path so the next Fetch refetches. Test
// hook: it expires without discarding, exercising the same code path as a
// real TTL lapse.
func (c *CachingStore) Expire(path string) {
	c.mu.Lock()
	if e := c.entries[path]; e != nil {
		e.fetchedAt = e.fetchedAt.Add(-2 * c.ttl)
	}
	c.mu.Unlock()
}
