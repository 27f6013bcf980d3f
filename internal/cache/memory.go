package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-memory layer, bounded both by TTL eviction and
// by an explicit item cap.
type MemoryCache struct {
	cache    *gocache.Cache
	maxItems int
}

// NewMemoryCache creates a memory cache. maxItems <= 0 means unbounded.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration, maxItems int) *MemoryCache {
	return &MemoryCache{
		cache:    gocache.New(defaultTTL, cleanupInterval),
		maxItems: maxItems,
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value with the given TTL. When the item cap is reached,
// expired entries are evicted first; if the cache is still full the
// whole map is flushed.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if c.maxItems > 0 && c.cache.ItemCount() >= c.maxItems {
		c.cache.DeleteExpired()
		if c.cache.ItemCount() >= c.maxItems {
			c.cache.Flush()
		}
	}
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
