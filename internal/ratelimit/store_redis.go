package ratelimit

import (
	"context"
	"fmt"
	"time"

	platformredis "github.com/tech920/motor-claim-decision-api-sub000/internal/platform/redis"
)

// RedisStore counts requests in Redis so the limit holds across replicas. It
// uses a fixed window per key: INCR plus a first-write expiry keeps the check
// to one round trip, which matters on the claims hot path.
type RedisStore struct {
	client *platformredis.Client
}

func NewRedisStore(client *platformredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	windowKey := fmt.Sprintf("%s:%d", key, time.Now().Unix()/int64(window.Seconds()))

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit incr: %w", err)
	}

	count := int(incr.Val())
	resetAt := time.Now().Truncate(window).Add(window)
	if count > limit {
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}, nil
	}
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}, nil
}
