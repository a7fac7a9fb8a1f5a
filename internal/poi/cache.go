package poi

import (
	"sync"
)

// Cache deduplicates source loads by request signature. It is an
// explicit object handed to the composition root rather than
// module-level state, and supports explicit invalidation. Concurrent
// requests for the same key share one load.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	ready chan struct{}
	value any
	err   error
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Load returns the cached result for key, or runs load exactly once and
// caches it. A failed load is not cached, so the next request retries.
func (c *Cache) Load(key string, load func() (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		<-e.ready
		return e.value, e.err
	}

	e := &cacheEntry{ready: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	e.value, e.err = load()
	close(e.ready)

	if e.err != nil {
		c.mu.Lock()
		// Another goroutine may have invalidated and repopulated the
		// key while the load ran; only drop our own entry.
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
	}
	return e.value, e.err
}

// Invalidate drops the cached result for key, if any.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll drops every cached result.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}
