package cache

import (
	"context"
	"sync"
	"time"

	sellerapp "github.com/marketplace/backend/internal/application/seller"
)

// InMemoryStatsCache caches the marketplace counter block in process memory.
// Suitable for single-instance deployments and tests; distributed setups
// should use RedisStatsCache so invalidations reach every instance.
type InMemoryStatsCache struct {
	mu        sync.RWMutex
	stats     *sellerapp.MarketplaceStatsResponse
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryStatsCache creates an in-memory stats cache with the given TTL
func NewInMemoryStatsCache(ttl time.Duration) *InMemoryStatsCache {
	return &InMemoryStatsCache{ttl: ttl}
}

// Get retrieves the cached counter block, reporting whether it was present
func (c *InMemoryStatsCache) Get(_ context.Context) (*sellerapp.MarketplaceStatsResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stats == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}

	// Copy so callers cannot mutate the cached entry
	stats := *c.stats
	return &stats, true
}

// Set stores the counter block with the configured TTL
func (c *InMemoryStatsCache) Set(_ context.Context, stats *sellerapp.MarketplaceStatsResponse) {
	if stats == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *stats
	c.stats = &copied
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the cached counter block
func (c *InMemoryStatsCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
}

var _ sellerapp.StatsCache = (*InMemoryStatsCache)(nil)
