// Package cache provides a small JSON value cache with a Redis backend and a
// no-op backend for deployments without Redis.
package cache

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_cache.go -package=mocks research-portfolio/internal/cache Cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"research-portfolio/internal/contextutil"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encoded values.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// GetOrSet loads dest from the cache, or calls load, stores its result and
	// decodes it into dest. Concurrent loads of one key are collapsed.
	GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration, load func(ctx context.Context) (any, error)) error
}

// Option configures a RedisCache.
type Option func(*RedisCache)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *RedisCache) { c.prefix = prefix }
}

// WithDefaultTTL sets the TTL used when Set is called with zero.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *RedisCache) { c.defaultTTL = ttl }
}

// RedisCache implements Cache on Redis.
type RedisCache struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
	group      singleflight.Group
}

// NewRedisCache wraps client.
func NewRedisCache(client redis.UniversalClient, opts ...Option) *RedisCache {
	c := &RedisCache{
		client:     client,
		prefix:     "portfolio:",
		defaultTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open parses a redis:// URL, pings the server and returns a RedisCache.
func Open(ctx context.Context, url string, opts ...Option) (*RedisCache, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(o)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisCache(client, opts...), nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) fullKey(key string) string {
	return c.prefix + key
}

// jitter spreads expiry by up to ±10%.
func jitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	delta := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(delta)
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, jitter(ttl)).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// GetOrSet implements Cache. Cache errors are logged and fall through to load.
func (c *RedisCache) GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration, load func(ctx context.Context) (any, error)) error {
	logger := contextutil.LoggerFromContext(ctx)

	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrMiss) {
		logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, key, value, ttl); err != nil {
			logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		}
		return value, nil
	})
	if err != nil {
		return err
	}
	return assign(v, dest)
}

// assign copies a loaded value into dest through JSON, matching what a cache hit produces.
func assign(v, dest any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode loaded value: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// Nop is a Cache that stores nothing.
type Nop struct{}

// Get implements Cache.
func (Nop) Get(context.Context, string, any) error { return ErrMiss }

// Set implements Cache.
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }

// Delete implements Cache.
func (Nop) Delete(context.Context, ...string) error { return nil }

// GetOrSet implements Cache by always loading.
func (Nop) GetOrSet(ctx context.Context, _ string, dest any, _ time.Duration, load func(ctx context.Context) (any, error)) error {
	v, err := load(ctx)
	if err != nil {
		return err
	}
	return assign(v, dest)
}
