package dataset

import (
	"sync"
	"time"
)

// Cache holds parsed datasets keyed by source path. An entry is served
// only while its TTL has not elapsed and the source file's modification
// time is unchanged; either condition failing is a miss.
//
// The clock is injectable so expiry is testable without sleeping.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	ds       *Dataset
	modTime  time.Time
	storedAt time.Time
}

// NewCache creates a dataset cache with the given TTL. A zero or
// negative TTL disables expiry; entries are then invalidated only by a
// modification-time change or an explicit Invalidate.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached dataset for path if it is unexpired and was
// stored for the same modification time.
func (c *Cache) Get(path string, modTime time.Time) (*Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	if !e.modTime.Equal(modTime) {
		delete(c.entries, path)
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, path)
		return nil, false
	}
	return e.ds, true
}

// Put stores a dataset for path at the given source modification time.
func (c *Cache) Put(path string, modTime time.Time, ds *Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{ds: ds, modTime: modTime, storedAt: c.now()}
}

// Invalidate drops the cached entry for path, if any.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// SetClock replaces the cache's time source. Tests use this to drive
// expiry deterministically.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
