// Package cache holds the Redis-backed caches for the entitlement hot path.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servio-inc/servio/internal/application/subscription/usecases"
	"github.com/servio-inc/servio/internal/shared/logger"
)

const (
	statusKeyPrefix = "servio:substatus:"
	baseStatusTTL   = 5 * time.Minute
	statusTTLJitter = 2 * time.Minute // TTL range: 5-7 min (anti-stampede)
)

// RedisStatusCache caches status snapshots as JSON blobs. Invalidation is
// explicit: every write path deletes the business's entry so the next read
// rebuilds from the database.
type RedisStatusCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisStatusCache(client *redis.Client, logger logger.Interface) usecases.StatusCache {
	return &RedisStatusCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisStatusCache) key(businessID uint) string {
	return fmt.Sprintf("%s%d", statusKeyPrefix, businessID)
}

func (c *RedisStatusCache) Get(ctx context.Context, businessID uint) (*usecases.StatusSnapshot, error) {
	raw, err := c.client.Get(ctx, c.key(businessID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("failed to get status snapshot from cache: %w", err)
	}

	var snapshot usecases.StatusSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// Corrupt entry; drop it and treat as a miss.
		c.logger.Warnw("dropping corrupt status cache entry", "business_id", businessID, "error", err)
		_ = c.client.Del(ctx, c.key(businessID)).Err()
		return nil, nil
	}

	return &snapshot, nil
}

func (c *RedisStatusCache) Set(ctx context.Context, businessID uint, snapshot *usecases.StatusSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal status snapshot: %w", err)
	}

	if err := c.client.Set(ctx, c.key(businessID), raw, statusTTLWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set status snapshot in cache: %w", err)
	}

	c.logger.Debugw("status snapshot cached",
		"business_id", businessID,
		"status", snapshot.Status,
	)

	return nil
}

func (c *RedisStatusCache) Invalidate(ctx context.Context, businessID uint) error {
	if err := c.client.Del(ctx, c.key(businessID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate status cache: %w", err)
	}

	c.logger.Debugw("status cache invalidated", "business_id", businessID)
	return nil
}

// statusTTLWithJitter returns a randomized TTL to prevent cache stampede.
func statusTTLWithJitter() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(statusTTLJitter)))
	return baseStatusTTL + jitter
}
