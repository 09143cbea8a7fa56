// Package rediscache caches validated case results in Redis. The cache is
// best effort: every Redis failure degrades to a miss and the caller falls
// back to the store.
package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	platformredis "github.com/tech920/motor-claim-decision-api-sub000/internal/platform/redis"
)

const keyPrefix = "claims:result:"

type Cache struct {
	client *platformredis.Client
	logger *slog.Logger
}

func New(client *platformredis.Client, logger *slog.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

func (c *Cache) Get(ctx context.Context, claimID string) (*models.CaseResult, bool) {
	data, err := c.client.Get(ctx, keyPrefix+claimID).Bytes()
	if err != nil {
		return nil, false
	}

	var result models.CaseResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.WarnContext(ctx, "corrupt cached case result",
			slog.String("claim_id", claimID),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return &result, true
}

func (c *Cache) Set(ctx context.Context, result *models.CaseResult, ttl time.Duration) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+result.ClaimID, data, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache case result failed",
			slog.String("claim_id", result.ClaimID),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Cache) Invalidate(ctx context.Context, claimID string) {
	if err := c.client.Del(ctx, keyPrefix+claimID).Err(); err != nil {
		c.logger.WarnContext(ctx, "invalidate cached case result failed",
			slog.String("claim_id", claimID),
			slog.String("error", err.Error()),
		)
	}
}
