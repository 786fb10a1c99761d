package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheOptions represents options for cache operations
type CacheOptions struct {
	// CacheName names the cache; keys are stored as <namespace>::<CacheName>::<key>
	CacheName string
	// TTL overrides the TTL configured for CacheName on the client
	TTL time.Duration
	// RefreshTTL extends the TTL on every hit
	RefreshTTL   bool
	Serializer   func(any) ([]byte, error)
	Deserializer func([]byte, any) error
}

// NewCacheOptions creates cache options using JSON serialization
func NewCacheOptions(cacheName string) *CacheOptions {
	return &CacheOptions{
		CacheName:    cacheName,
		Serializer:   json.Marshal,
		Deserializer: json.Unmarshal,
	}
}

// WithTTL sets the TTL for cache operations
func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	if ttl < 0 {
		panic(fmt.Sprintf("invalid TTL: %v, must be non-negative", ttl))
	}
	co.TTL = ttl
	return co
}

// WithRefreshTTL enables TTL refresh on access
func (co *CacheOptions) WithRefreshTTL(refresh bool) *CacheOptions {
	co.RefreshTTL = refresh
	return co
}

// Cache provides typed get/set operations over a named key space
type Cache struct {
	client *Client
	opts   *CacheOptions
}

// NewCache creates a new cache bound to client
func NewCache(client *Client, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = NewCacheOptions("default")
	}
	if opts.Serializer == nil {
		opts.Serializer = json.Marshal
	}
	if opts.Deserializer == nil {
		opts.Deserializer = json.Unmarshal
	}
	return &Cache{client: client, opts: opts}
}

func (c *Cache) ttl() time.Duration {
	if c.opts.TTL > 0 {
		return c.opts.TTL
	}
	return c.client.config.CacheTTL(c.opts.CacheName)
}

func (c *Cache) key(key string) string {
	return c.client.config.namespaced(c.opts.CacheName + "::" + key)
}

// Get loads the value stored under key into dest. Returns ErrCacheMiss when absent.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	fullKey := c.key(key)
	data, err := c.client.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", fullKey, err)
	}

	if c.opts.RefreshTTL {
		_ = c.client.client.Expire(ctx, fullKey, c.ttl()).Err()
	}
	return c.opts.Deserializer(data, dest)
}

// Set stores value under key with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := c.opts.Serializer(value)
	if err != nil {
		return fmt.Errorf("failed to serialize cache value: %w", err)
	}
	return c.client.client.Set(ctx, c.key(key), data, c.ttl()).Err()
}

// Delete removes key from the cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.client.Del(ctx, c.key(key)).Err()
}

// GetOrSet returns the cached value or calls loader, stores its result and decodes it into dest.
// Loader errors are returned as they are and nothing is cached.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest any, loader func(ctx context.Context) (any, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}

	data, err := c.opts.Serializer(value)
	if err != nil {
		return fmt.Errorf("failed to serialize cache value: %w", err)
	}
	if err := c.client.client.Set(ctx, c.key(key), data, c.ttl()).Err(); err != nil {
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return c.opts.Deserializer(data, dest)
}
