// Package redis provides an optional short-TTL cache for search responses,
// keyed by the normalized query. A miss or a Redis failure is never an
// error: the pipeline just runs.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Config holds connection parameters for the cache.
type Config struct {
	Addrs    []string
	Password string
	TTL      time.Duration
}

// Cache stores marshalled search responses in Redis.
type Cache struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a Redis-backed cache via rueidis.
func New(cfg Config, logger *zap.Logger) (*Cache, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Cache{client: client, ttl: ttl, logger: logger}, nil
}

// Get retrieves a cached value. The second return reports a hit.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	cmd := c.client.B().Get().Key(key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.logger.Warn("Failed to read cached response", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a value with the configured TTL. Failures are logged, not
// returned; caching is best effort.
func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	cmd := c.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	cmd := c.client.B().Ping().Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (c *Cache) Close() {
	c.client.Close()
}
