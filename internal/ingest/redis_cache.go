package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "trend_analyzer:static:"
	redisIndexKey  = "trend_analyzer:static:keys"
)

// RedisCache stores memoized tables in Redis so replicas share one parse.
// Entries are written without a TTL, matching the in-process cache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a RedisCache on an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisCacheFromURL parses a redis:// or rediss:// URL and connects.
func NewRedisCacheFromURL(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewRedisCache(redis.NewClient(opts)), nil
}

// Get loads and decodes the table stored under key.
func (c *RedisCache) Get(ctx context.Context, key string) (*Table, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached table: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode cached table: %w", err)
	}
	return &table, nil
}

// Set encodes table and stores it under key.
func (c *RedisCache) Set(ctx context.Context, key string, table *Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+key, data, 0)
	pipe.SAdd(ctx, redisIndexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache table: %w", err)
	}
	return nil
}

// Invalidate removes key.
func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, redisKeyPrefix+key)
	pipe.SRem(ctx, redisIndexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate cached table: %w", err)
	}
	return nil
}

// Purge removes every table this cache has written.
func (c *RedisCache) Purge(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list cached tables: %w", err)
	}

	pipe := c.client.TxPipeline()
	for _, key := range keys {
		pipe.Del(ctx, redisKeyPrefix+key)
	}
	pipe.Del(ctx, redisIndexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to purge cached tables: %w", err)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
