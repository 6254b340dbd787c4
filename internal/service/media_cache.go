package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/animeworld/animeworld-api/pkg/database"
)

// MediaCache stores normalized catalog responses in Redis as JSON blobs.
// Cache failures degrade to upstream fetches and are never surfaced.
type MediaCache struct {
	redis  *database.Redis
	logger *zap.Logger
}

// NewMediaCache creates a new media cache
func NewMediaCache(redis *database.Redis, logger *zap.Logger) *MediaCache {
	return &MediaCache{redis: redis, logger: logger}
}

// Get unmarshals the cached value for key into out. The second return is
// false on a miss or any cache error.
func (c *MediaCache) Get(ctx context.Context, key string, out any) bool {
	if c.redis == nil {
		return false
	}

	raw, err := c.redis.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores value under key for ttl. Failures are logged and swallowed.
func (c *MediaCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c.redis == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.redis.Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func trendingKey(kind, limit any) string {
	return fmt.Sprintf("catalog:trending:%v:%v", kind, limit)
}

func detailKey(id int) string {
	return fmt.Sprintf("catalog:detail:%d", id)
}

func scheduleKey(daysAhead, perPage int) string {
	return fmt.Sprintf("catalog:schedule:%d:%d", daysAhead, perPage)
}

func upcomingKey(perPage int) string {
	return fmt.Sprintf("catalog:upcoming:%d", perPage)
}

func studiosKey(limit int) string {
	return fmt.Sprintf("catalog:studios:%d", limit)
}
