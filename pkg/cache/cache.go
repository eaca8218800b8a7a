// Package cache stores JSON-encoded content query results in Redis with a fixed TTL.
// A nil *Cache is valid and caches nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "content:"

// Cache is a read-through JSON cache.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cache. It returns nil when rdb is nil or ttl is not positive.
func New(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get decodes the cached value of key into dest and reports whether it was present.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.rdb.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores v under key for the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, v interface{}) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, KeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Load returns the cached value of key in dest, or calls load, caches its result and decodes
// it into dest. Cache errors are logged and never fail the call.
func (c *Cache) Load(ctx context.Context, key string, dest interface{}, load func(ctx context.Context, dest interface{}) error) error {
	if hit, err := c.Get(ctx, key, dest); err != nil {
		c.logger.Warn("content cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return nil
	}
	if err := load(ctx, dest); err != nil {
		return err
	}
	if err := c.Set(ctx, key, dest); err != nil {
		c.logger.Warn("content cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}
