package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"mini-shop/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const (
	// DefaultCacheKey is the Redis key holding the cached product list.
	DefaultCacheKey = "minishop:catalog:products"
	// DefaultCacheTTL is used when no TTL is configured.
	DefaultCacheTTL = 5 * time.Minute
)

// RedisCache stores the product list in Redis so replicas share one fetch.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration

	hits   int64
	misses int64
}

// CacheOption customises a RedisCache.
type CacheOption func(*RedisCache)

// WithCacheTTL sets the expiry of the cached list.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheKey sets the Redis key of the cached list.
func WithCacheKey(key string) CacheOption {
	return func(c *RedisCache) {
		c.key = key
	}
}

// NewRedisCache creates a Redis-backed product list cache.
func NewRedisCache(client *redis.Client, opts ...CacheOption) *RedisCache {
	cache := &RedisCache{
		client: client,
		key:    DefaultCacheKey,
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get returns the cached list. Redis errors and corrupt entries count as a miss.
func (c *RedisCache) Get(ctx context.Context) ([]model.Product, bool) {
	val, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	var products []model.Product
	if err := json.Unmarshal(val, &products); err != nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return products, true
}

// Set stores the list with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal product list: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product list in Redis: %w", err)
	}

	return nil
}

// Invalidate removes the cached list.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete product list from Redis: %w", err)
	}
	return nil
}

// Stats returns hit and miss counters.
func (c *RedisCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cachedSource reads through a RedisCache in front of another Source.
type cachedSource struct {
	source Source
	cache  *RedisCache
	logger zerolog.Logger
}

// NewCachedSource wraps source with a read-through Redis cache.
func NewCachedSource(source Source, cache *RedisCache, logger zerolog.Logger) Source {
	return &cachedSource{
		source: source,
		cache:  cache,
		logger: logger.With().Str("component", "catalog-cache").Logger(),
	}
}

// Invalidate drops the cached list so the next Fetch reaches the source.
func (s *cachedSource) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

func (s *cachedSource) Fetch(ctx context.Context) ([]model.Product, error) {
	if products, ok := s.cache.Get(ctx); ok {
		s.logger.Debug().Int("count", len(products)).Msg("catalog served from cache")
		return products, nil
	}

	products, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, products); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache catalog")
	}

	return products, nil
}
