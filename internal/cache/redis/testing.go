package redis

import (
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// NewCacheForTest creates a Cache with the provided rueidis client (test-only).
func NewCacheForTest(c rueidis.Client, ttl time.Duration) *Cache {
	return &Cache{client: c, ttl: ttl, logger: zap.NewNop()}
}
