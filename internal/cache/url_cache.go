package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-shortlink/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const urlCachePrefix = "url:"

// URLCache is a best-effort read-through cache for URL records on the
// redirect hot path. Implementations return nil, nil on a miss, and treat
// infrastructure errors as misses.
type URLCache interface {
	Get(ctx context.Context, shortCode string) (*domain.URL, error)
	Set(ctx context.Context, u *domain.URL) error
}

// Compile-time interface checks
var (
	_ URLCache = (*RedisURLCache)(nil)
	_ URLCache = (*NoopURLCache)(nil)
)

// RedisURLCache implements URLCache using Redis.
type RedisURLCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisURLCache creates a new Redis-based URL cache. Returns a no-op
// cache when the Redis client is nil.
func NewRedisURLCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) URLCache {
	if rdb == nil {
		return &NoopURLCache{}
	}
	return &RedisURLCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisURLCache) cacheKey(shortCode string) string {
	return urlCachePrefix + shortCode
}

// Get retrieves a URL from Redis cache.
func (c *RedisURLCache) Get(ctx context.Context, shortCode string) (*domain.URL, error) {
	data, err := c.rdb.Get(ctx, c.cacheKey(shortCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		c.logger.Warn("failed to get url from cache", zap.Error(err))
		return nil, nil // treat errors as cache miss
	}

	var u domain.URL
	if err := json.Unmarshal(data, &u); err != nil {
		c.logger.Warn("failed to unmarshal cached url", zap.Error(err))
		return nil, nil
	}

	return &u, nil
}

// Set stores a URL in Redis cache. Cache errors never fail the caller.
func (c *RedisURLCache) Set(ctx context.Context, u *domain.URL) error {
	data, err := json.Marshal(u)
	if err != nil {
		c.logger.Warn("failed to marshal url for cache", zap.Error(err))
		return nil
	}

	if err := c.rdb.Set(ctx, c.cacheKey(u.ShortCode), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache url", zap.Error(err))
	}

	return nil
}

// NoopURLCache is used when Redis is not configured.
type NoopURLCache struct{}

func (c *NoopURLCache) Get(context.Context, string) (*domain.URL, error) { return nil, nil }
func (c *NoopURLCache) Set(context.Context, *domain.URL) error           { return nil }
