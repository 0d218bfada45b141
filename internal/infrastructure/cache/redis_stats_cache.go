// Package cache provides the marketplace statistics cache. The counters
// behind the admin dashboard are recomputed from several tables, so the
// block is cached with a short TTL and invalidated on moderation actions.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sellerapp "github.com/marketplace/backend/internal/application/seller"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsKey = "marketplace:stats"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient creates and pings a Redis client from the given configuration
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisStatsCache caches the marketplace counter block in Redis. This is
// suitable for distributed deployments where multiple instances share
// the cache. All operations are best-effort: a Redis failure is logged
// and degrades to a recount, never to a request error.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStatsCache creates a stats cache on an existing Redis client
func NewRedisStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStatsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves the cached counter block, reporting whether it was present
func (c *RedisStatsCache) Get(ctx context.Context) (*sellerapp.MarketplaceStatsResponse, bool) {
	data, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var stats sellerapp.MarketplaceStatsResponse
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Warn("stats cache entry corrupt, dropping", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}

	return &stats, true
}

// Set stores the counter block with the configured TTL
func (c *RedisStatsCache) Set(ctx context.Context, stats *sellerapp.MarketplaceStatsResponse) {
	data, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warn("stats cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, statsKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached counter block
func (c *RedisStatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		c.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

// Close closes the underlying Redis client
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

var _ sellerapp.StatsCache = (*RedisStatsCache)(nil)
