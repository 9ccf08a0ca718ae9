package cache

import (
	"context"
	"sync"
	"time"

	"github.com/labelproof/backend/internal/domain"
)

// cacheItem represents a single token sequence in the cache with expiration
type cacheItem struct {
	Tokens     []domain.OCRToken
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory token cache with TTL support.
// It fronts the remote OCR service so re-submitting the same photo skips
// the recognition round-trip.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory token cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Cleanup goroutine removes expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a token sequence from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]domain.OCRToken, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Tokens, nil
}

// Set stores a token sequence in the cache with TTL. The slice is copied so
// later mutation by the caller cannot corrupt the cached entry.
func (c *MemoryCache) Set(ctx context.Context, key string, tokens []domain.OCRToken, ttl time.Duration) error {
	stored := make([]domain.OCRToken, len(tokens))
	copy(stored, tokens)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Tokens:     stored,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a token sequence from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
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
