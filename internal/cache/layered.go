package cache

import "time"

// LayeredCache checks memory first, then disk, promoting disk hits back
// into memory. Each layer applies its own TTL on write: memory entries
// expire on the short memory TTL while the disk copy stays valid for the
// longer disk TTL, so a restarted process can still serve from disk.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a memory+disk cache pair with independent TTLs.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(scope, resource string) ([]byte, bool) {
	if val, found := c.memory.Get(scope, resource); found {
		return val, true
	}

	if val, found := c.disk.Get(scope, resource); found {
		_ = c.memory.Set(scope, resource, val)
		return val, true
	}

	return nil, false
}

func (c *LayeredCache) Set(scope, resource string, value []byte) error {
	if err := c.memory.Set(scope, resource, value); err != nil {
		return err
	}
	return c.disk.Set(scope, resource, value)
}

func (c *LayeredCache) Delete(scope, resource string) error {
	_ = c.memory.Delete(scope, resource)
	_ = c.disk.Delete(scope, resource)
	return nil
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
