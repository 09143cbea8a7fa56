//go:build integration

package rediscache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	platformredis "github.com/tech920/motor-claim-decision-api-sub000/internal/platform/redis"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *Cache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	client := &platformredis.Client{Client: s.redis.Client}
	s.cache = New(client, slog.Default())
}

func (s *RedisCacheSuite) TearDownSuite() {
	if s.redis != nil {
		_ = s.redis.Client.Close()
		_ = s.redis.Container.Terminate(context.Background())
	}
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestSetAndGet() {
	ctx := context.Background()

	result := &models.CaseResult{
		ClaimID: "1001",
		Decisions: []models.ValidatedDecision{
			{PartyID: "1", Decision: models.DecisionAccepted},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	s.cache.Set(ctx, result, time.Minute)

	got, ok := s.cache.Get(ctx, "1001")
	s.Require().True(ok)
	s.Equal(result.ClaimID, got.ClaimID)
	s.Equal(result.Decisions, got.Decisions)
}

func (s *RedisCacheSuite) TestMissOnUnknownClaim() {
	_, ok := s.cache.Get(context.Background(), "missing")
	s.False(ok)
}

func (s *RedisCacheSuite) TestInvalidate() {
	ctx := context.Background()

	s.cache.Set(ctx, &models.CaseResult{ClaimID: "1001"}, time.Minute)
	s.cache.Invalidate(ctx, "1001")

	_, ok := s.cache.Get(ctx, "1001")
	s.False(ok)
}

func (s *RedisCacheSuite) TestExpiry() {
	ctx := context.Background()

	s.cache.Set(ctx, &models.CaseResult{ClaimID: "1001"}, 50*time.Millisecond)

	s.Require().Eventually(func() bool {
		_, ok := s.cache.Get(ctx, "1001")
		return !ok
	}, time.Second, 20*time.Millisecond)
}
