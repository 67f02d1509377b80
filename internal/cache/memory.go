package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps session-scoped responses in memory for the life of
// the process. Entries expire on the cache's own TTL.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache whose entries live for ttl.
func NewMemoryCache(ttl, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func (c *MemoryCache) Get(scope, resource string) ([]byte, bool) {
	if val, found := c.cache.Get(key(scope, resource)); found {
		return val.([]byte), true
	}
	return nil, false
}

func (c *MemoryCache) Set(scope, resource string, value []byte) error {
	c.cache.Set(key(scope, resource), value, gocache.DefaultExpiration)
	return nil
}

func (c *MemoryCache) Delete(scope, resource string) error {
	c.cache.Delete(key(scope, resource))
	return nil
}

func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
