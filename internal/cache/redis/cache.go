// Package redis is a port.AggregateCache shared across processes through Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"darf/internal/config"
	"darf/internal/port"
)

const (
	keyPrefix  = "darf:agg:"
	versionKey = keyPrefix + "version"
)

// Client wraps the go-redis client with health checking capabilities.
type Client struct {
	*redis.Client
}

// NewClient creates a Redis client from cfg.
// Returns nil if the URL is empty (Redis not configured).
func NewClient(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Cache stores entries under a version namespace; Invalidate bumps the
// version so stale entries are never read again and expire on their own.
type Cache struct {
	rdb redis.UniversalClient
}

var _ port.AggregateCache = (*Cache)(nil)

// NewCache creates a Cache on top of rdb.
func NewCache(rdb redis.UniversalClient) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.rdb.Get(ctx, namespace(version)+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("redisCache.Get: %w", err)
	}
	return raw, version, true, nil
}

// Set writes under the namespace of version. After an Invalidate that
// namespace is no longer read, so a stale write is harmless and expires.
func (c *Cache) Set(ctx context.Context, key string, version int64, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, namespace(version)+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redisCache.Set: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("redisCache.Invalidate: %w", err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redisCache.version: %w", err)
	}
	return v, nil
}

func namespace(version int64) string {
	return fmt.Sprintf("%sv%d:", keyPrefix, version)
}
