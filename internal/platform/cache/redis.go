// File: internal/platform/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"devconnector_backend/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a thin read-through cache over redis for the public list endpoints.
// When no REDIS_ADDR is configured every method is a no-op, so callers never
// need to branch on availability. Cache failures are logged and ignored; the
// database remains the source of truth.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New constructs the cache. Returns a disabled instance when redis is not configured.
func New(cfg *config.Config, logger *zap.Logger) *Cache {
	if cfg.RedisAddr == "" {
		logger.Info("Redis not configured, list caching disabled")
		return &Cache{logger: logger}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &Cache{rdb: rdb, ttl: cfg.ListCacheTTL, logger: logger}
}

// GetJSON loads a cached value into dest. Returns false on miss, disabled cache,
// or any redis/unmarshal failure.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		c.logger.Warn("Cache entry unmarshal failed, dropping", zap.String("key", key), zap.Error(err))
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under key with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache value marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Debug("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes the given keys. Called after every aggregate mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Close releases the underlying client, if any.
func (c *Cache) Close() {
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
