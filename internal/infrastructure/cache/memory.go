package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/buildco/catalog/internal/domain"
)

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Hits       []domain.SearchHit
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory suggestion cache with TTL support
// and a bound on the number of entries
type MemoryCache struct {
	data       map[string]cacheItem
	maxEntries int
	mutex      sync.RWMutex
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewMemoryCache creates a new in-memory cache. maxEntries <= 0 means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	cache := &MemoryCache{
		data:       make(map[string]cacheItem),
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}

	// Remove expired entries every 10 minutes
	go cache.cleanupExpired(10 * time.Minute)

	return cache
}

// Get retrieves suggestions from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]domain.SearchHit, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return slices.Clone(item.Hits), nil
}

// Set stores suggestions in the cache with TTL. When the cache is full the
// entry closest to expiry is evicted.
func (c *MemoryCache) Set(ctx context.Context, key string, hits []domain.SearchHit, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictOldest()
	}

	stored := slices.Clone(hits)
	if stored == nil {
		stored = []domain.SearchHit{}
	}

	c.data[key] = cacheItem{
		Hits:       stored,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// evictOldest drops the entry with the earliest expiration. Caller holds the lock.
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true

	for key, item := range c.data {
		if first || item.Expiration.Before(oldest) {
			oldestKey = key
			oldest = item.Expiration
			first = false
		}
	}

	if !first {
		delete(c.data, oldestKey)
	}
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mutex.Lock()
			now := time.Now()
			for key, item := range c.data {
				if now.After(item.Expiration) {
					delete(c.data, key)
				}
			}
			c.mutex.Unlock()
		}
	}
}

// Close stops the cleanup goroutine
func (c *MemoryCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
