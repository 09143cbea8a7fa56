package service

//go:generate mockgen -source=../ports/ports.go -destination=../ports/mocks/mocks.go -package=mocks

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/ports/mocks"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/decision"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/extract"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/insurer"
	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockSource *mocks.MockDecisionSource
	mockStore  *mocks.MockCaseStore
	mockCache  *mocks.MockResultCache
	mockAudit  *mocks.MockAuditPublisher
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSource = mocks.NewMockDecisionSource(s.ctrl)
	s.mockStore = mocks.NewMockCaseStore(s.ctrl)
	s.mockCache = mocks.NewMockResultCache(s.ctrl)
	s.mockAudit = mocks.NewMockAuditPublisher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	classifier := insurer.NewClassifier(insurer.Profile{
		Brand:          "Tawuniya",
		ArabicBrand:    "التعاونية",
		ArabicFullName: "شركة التعاونية للتأمين",
	})
	engine := decision.NewEngine(classifier, logger, nil)

	var err error
	s.service, err = New(
		extract.NewNormalizer(nil),
		engine,
		s.mockSource,
		s.mockStore,
		logger,
		WithResultCache(s.mockCache, time.Minute),
		WithAuditPublisher(s.mockAudit),
		WithWorkers(2),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestNewRequiresDependencies() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := New(nil, nil, s.mockSource, s.mockStore, logger)
	s.Error(err)
}

func (s *ServiceSuite) TestProcessCorrectsModelDecision() {
	ctx := context.Background()

	// Fully at-fault party the model wrongly accepted.
	req := ProcessRequest{
		ClaimID: "1001",
		Records: []extract.Record{
			{"ID": "1", "Liability": 100, "Company_Name_English": "OtherCo Insurance"},
			{"ID": "2", "Liability": 0, "Company_Name_English": "OtherCo Insurance"},
		},
	}

	s.mockSource.EXPECT().
		Decide(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.CaseBundle, _ int) models.RawDecision {
			return models.RawDecision{Decision: models.DecisionAccepted, Reasoning: "looks fine"}
		}).
		Times(2)

	var saved *models.CaseResult
	s.mockStore.EXPECT().
		SaveCase(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, result *models.CaseResult) error {
			saved = result
			return nil
		})
	s.mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), time.Minute)
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	result, err := s.service.Process(ctx, req)
	s.Require().NoError(err)
	s.Require().Len(result.Decisions, 2)

	byParty := map[string]models.ValidatedDecision{}
	for _, d := range result.Decisions {
		byParty[d.PartyID] = d
	}
	// The 100% party is force-rejected; the 0% victim is accepted.
	s.Equal(models.DecisionRejected, byParty["1"].Decision)
	s.Equal(models.DecisionAccepted, byParty["2"].Decision)
	s.Same(saved, result)
}

func (s *ServiceSuite) TestProcessEmitsCorrectionAudit() {
	ctx := context.Background()

	req := ProcessRequest{
		ClaimID: "1002",
		Records: []extract.Record{
			{"ID": "1", "Liability": 100, "Company_Name_English": "OtherCo Insurance"},
		},
	}

	s.mockSource.EXPECT().
		Decide(gomock.Any(), gomock.Any(), 0).
		Return(models.RawDecision{Decision: models.DecisionAccepted})
	s.mockStore.EXPECT().SaveCase(gomock.Any(), gomock.Any()).Return(nil)
	s.mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any())

	var actions []string
	s.mockAudit.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			actions = append(actions, event.Action)
			return nil
		}).
		AnyTimes()

	_, err := s.service.Process(ctx, req)
	s.Require().NoError(err)

	s.Contains(actions, audit.EventCaseReceived)
	s.Contains(actions, audit.EventDecisionCorrected)
	s.Contains(actions, audit.EventCasePersisted)
}

func (s *ServiceSuite) TestProcessPassesModelErrorThrough() {
	ctx := context.Background()

	req := ProcessRequest{
		ClaimID: "1003",
		Records: []extract.Record{
			{"ID": "1", "Liability": 25, "Company_Name_English": "OtherCo Insurance"},
		},
	}

	s.mockSource.EXPECT().
		Decide(gomock.Any(), gomock.Any(), 0).
		Return(models.RawDecision{Decision: models.DecisionError, Reasoning: "decision source unavailable"})
	s.mockStore.EXPECT().SaveCase(gomock.Any(), gomock.Any()).Return(nil)
	s.mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any())
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	result, err := s.service.Process(ctx, req)
	s.Require().NoError(err)
	s.Equal(models.DecisionError, result.Decisions[0].Decision)
	s.Empty(result.Decisions[0].AppliedRules)
}

func (s *ServiceSuite) TestProcessRejectsEmptyRequests() {
	_, err := s.service.Process(context.Background(), ProcessRequest{})
	s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))

	_, err = s.service.Process(context.Background(), ProcessRequest{ClaimID: "1001"})
	s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))
}

func (s *ServiceSuite) TestProcessSurfacesStoreFailure() {
	ctx := context.Background()

	req := ProcessRequest{
		ClaimID: "1004",
		Records: []extract.Record{{"ID": "1", "Liability": 25, "Company_Name_English": "OtherCo Insurance"}},
	}

	s.mockSource.EXPECT().
		Decide(gomock.Any(), gomock.Any(), 0).
		Return(models.RawDecision{Decision: models.DecisionAccepted})
	s.mockStore.EXPECT().SaveCase(gomock.Any(), gomock.Any()).Return(sentinel.ErrUnavailable)
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := s.service.Process(ctx, req)
	s.True(domainerrors.HasCode(err, domainerrors.CodeInternal))
}

func (s *ServiceSuite) TestGetPrefersCache() {
	ctx := context.Background()
	cached := &models.CaseResult{ClaimID: "1001"}

	s.mockCache.EXPECT().Get(gomock.Any(), "1001").Return(cached, true)

	got, err := s.service.Get(ctx, "1001")
	s.Require().NoError(err)
	s.Same(cached, got)
}

func (s *ServiceSuite) TestGetFallsBackToStoreAndBackfillsCache() {
	ctx := context.Background()
	stored := &models.CaseResult{ClaimID: "1001"}

	s.mockCache.EXPECT().Get(gomock.Any(), "1001").Return(nil, false)
	s.mockStore.EXPECT().FindByClaimID(gomock.Any(), "1001").Return(stored, nil)
	s.mockCache.EXPECT().Set(gomock.Any(), stored, time.Minute)

	got, err := s.service.Get(ctx, "1001")
	s.Require().NoError(err)
	s.Same(stored, got)
}

func (s *ServiceSuite) TestGetUnknownClaim() {
	s.mockCache.EXPECT().Get(gomock.Any(), "missing").Return(nil, false)
	s.mockStore.EXPECT().FindByClaimID(gomock.Any(), "missing").Return(nil, sentinel.ErrNotFound)

	_, err := s.service.Get(context.Background(), "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ServiceSuite) TestValidateSharedByBatchPath() {
	bundle := models.CaseBundle{
		ClaimID: "2001",
		Parties: []models.PartyFact{
			{PartyID: "1", Liability: 25, InsurerEnglishName: "OtherCo Insurance"},
		},
		Raw: []models.RawDecision{
			{Decision: models.DecisionRejected, Reasoning: "model says no"},
		},
	}
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	decisions := s.service.Validate(context.Background(), bundle)
	s.Require().Len(decisions, 1)
	s.Equal(models.DecisionAccepted, decisions[0].Decision)
}
