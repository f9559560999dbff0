// Package cache shares the enumerated valid-phone count between replicas.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is versioned so a change to the rule set can move to a new key.
const DefaultKey = "phonereg:phone:valid_count:v1"

// RedisCache stores the valid count under a single key.
type RedisCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed count cache. A zero ttl keeps the value
// until evicted.
func NewRedis(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: DefaultKey, ttl: ttl}
}

// Get returns the cached count.
func (c *RedisCache) Get(ctx context.Context) (int, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get valid count: %w", err)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("parse cached valid count %q: %w", raw, err)
	}
	return n, true, nil
}

// Set stores the count.
func (c *RedisCache) Set(ctx context.Context, count int) error {
	if err := c.client.Set(ctx, c.key, strconv.Itoa(count), c.ttl).Err(); err != nil {
		return fmt.Errorf("set valid count: %w", err)
	}
	return nil
}
