// Package cache memoizes verdicts by dataset fingerprint so resubmitted
// datasets skip analysis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"payequity/internal/compliance"
	"payequity/pkg/platform/sentinel"
)

const keyPrefix = "payequity:verdict:"

// RedisCache stores verdicts as JSON with a TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed verdict cache. A zero ttl keeps entries
// until evicted.
func NewRedis(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, fingerprint string) (*compliance.Verdict, error) {
	data, err := c.client.Get(ctx, keyPrefix+fingerprint).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get cached verdict: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	var v compliance.Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode cached verdict: %w", err)
	}
	return &v, nil
}

func (c *RedisCache) Set(ctx context.Context, fingerprint string, verdict compliance.Verdict) error {
	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+fingerprint, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache verdict: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
