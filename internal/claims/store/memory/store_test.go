package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = New()
}

func (s *MemoryStoreSuite) sampleResult(claimID string) *models.CaseResult {
	return &models.CaseResult{
		ClaimID: claimID,
		Decisions: []models.ValidatedDecision{
			{PartyID: "1", Decision: models.DecisionRejected, AppliedRules: []string{"full_liability_rejection"}},
			{PartyID: "2", Decision: models.DecisionAccepted},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func (s *MemoryStoreSuite) TestSaveAndFind() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveCase(ctx, s.sampleResult("1001")))

	got, err := s.store.FindByClaimID(ctx, "1001")
	s.Require().NoError(err)
	s.Equal("1001", got.ClaimID)
	s.Len(got.Decisions, 2)
}

func (s *MemoryStoreSuite) TestFindUnknownClaim() {
	_, err := s.store.FindByClaimID(context.Background(), "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestReprocessingReplacesResult() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveCase(ctx, s.sampleResult("1001")))

	updated := s.sampleResult("1001")
	updated.Decisions = updated.Decisions[:1]
	s.Require().NoError(s.store.SaveCase(ctx, updated))

	got, err := s.store.FindByClaimID(ctx, "1001")
	s.Require().NoError(err)
	s.Len(got.Decisions, 1)
}

func (s *MemoryStoreSuite) TestRejectsEmptyClaimID() {
	s.ErrorIs(s.store.SaveCase(context.Background(), &models.CaseResult{}), sentinel.ErrInvalidState)
	s.ErrorIs(s.store.SaveCase(context.Background(), nil), sentinel.ErrInvalidState)
}

func (s *MemoryStoreSuite) TestReturnedResultIsACopy() {
	ctx := context.Background()
	s.Require().NoError(s.store.SaveCase(ctx, s.sampleResult("1001")))

	first, err := s.store.FindByClaimID(ctx, "1001")
	s.Require().NoError(err)
	first.Decisions[0].Decision = models.DecisionError

	second, err := s.store.FindByClaimID(ctx, "1001")
	s.Require().NoError(err)
	s.Equal(models.DecisionRejected, second.Decisions[0].Decision)
}
