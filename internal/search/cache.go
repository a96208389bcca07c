package search

import (
	"sort"
	"sync"
	"time"
)

// DefaultTTL is how long a cached search result stays valid.
const DefaultTTL = 5 * time.Minute

// cacheEntry holds a copy of a result plus its expiry time.
type cacheEntry struct {
	result    Result
	createdAt time.Time
	expiresAt time.Time
}

// Cache is a TTL-bounded in-memory store for search results. Expired entries
// are purged lazily on the next lookup for their key. The cache is constructed
// explicitly and injected into the Service so tests and callers control its
// lifecycle.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewCache creates a cache with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached result for key if present and unexpired. An expired
// entry is evicted and treated as a miss.
func (c *Cache) Get(key string) (Result, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Result{}, false
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock in case a fresh entry landed.
		if current, ok := c.entries[key]; ok && c.now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return Result{}, false
	}

	return entry.result, true
}

// Put stores a result under key with the cache's TTL.
func (c *Cache) Put(key string, result Result) {
	now := c.now()
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		result:    result,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Stats describes the cache contents for operational visibility.
type Stats struct {
	Size int      `json:"size"`
	TTL  string   `json:"ttl"`
	Keys []string `json:"keys"`
}

// Stats returns the current entry count and sorted key list.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return Stats{
		Size: len(keys),
		TTL:  c.ttl.String(),
		Keys: keys,
	}
}
