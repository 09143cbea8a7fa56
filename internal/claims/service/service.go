// Package service orchestrates claim processing: fact normalization, the
// model decision fan-out, rule validation, persistence and audit. The HTTP
// handler and the batch runner both drive this one pipeline.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/metrics"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/ports"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/decision"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/extract"
	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/sentinel"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/requestcontext"
)

// ProcessRequest carries one accident claim: the raw upstream party records,
// exactly as the source system produced them.
type ProcessRequest struct {
	ClaimID string
	Records []extract.Record
}

type Service struct {
	normalizer *extract.Normalizer
	engine     *decision.Engine
	source     ports.DecisionSource
	store      ports.CaseStore

	cache    ports.ResultCache
	cacheTTL time.Duration
	auditor  ports.AuditPublisher

	workers int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithResultCache(cache ports.ResultCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithWorkers bounds concurrent model calls per claim.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func New(
	normalizer *extract.Normalizer,
	engine *decision.Engine,
	source ports.DecisionSource,
	store ports.CaseStore,
	logger *slog.Logger,
	opts ...Option,
) (*Service, error) {
	if normalizer == nil || engine == nil || source == nil || store == nil {
		return nil, domainerrors.New(domainerrors.CodeInternal, "service dependencies missing")
	}

	svc := &Service{
		normalizer: normalizer,
		engine:     engine,
		source:     source,
		store:      store,
		workers:    4,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Process runs the full pipeline for one claim: normalize records, obtain a
// model decision per party, validate against the rulebook, persist and audit.
func (s *Service) Process(ctx context.Context, req ProcessRequest) (*models.CaseResult, error) {
	if req.ClaimID == "" {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "claim id is required")
	}
	if len(req.Records) == 0 {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "claim has no party records")
	}
	started := time.Now()

	facts, err := s.normalizer.Bundle(req.ClaimID, req.Records)
	if err != nil {
		return nil, err
	}

	bundle := models.CaseBundle{
		ClaimID: req.ClaimID,
		Parties: facts,
		Raw:     make([]models.RawDecision, len(facts)),
	}
	s.emit(ctx, audit.Event{ClaimID: req.ClaimID, Action: audit.EventCaseReceived})

	// One model call per party, bounded: the backend tolerates only a narrow
	// concurrency band. Decide never errors, so the group exists purely for
	// the limit and context plumbing.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range facts {
		g.Go(func() error {
			bundle.Raw[i] = s.source.Decide(gctx, bundle, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	decisions := s.Validate(ctx, bundle)

	result := &models.CaseResult{
		ClaimID:   req.ClaimID,
		Decisions: decisions,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.SaveCase(ctx, result); err != nil {
		s.metrics.IncrementProcessed("store_error")
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "persist case result")
	}
	s.emit(ctx, audit.Event{ClaimID: req.ClaimID, Action: audit.EventCasePersisted})

	if s.cache != nil {
		s.cache.Set(ctx, result, s.cacheTTL)
	}

	s.metrics.IncrementProcessed(processStatus(decisions))
	s.metrics.ObserveProcessDuration(time.Since(started).Seconds())
	return result, nil
}

// Validate runs the rule battery over a bundle whose raw decisions already
// exist. The HTTP validate endpoint and the batch runner call this directly
// with decisions produced elsewhere.
func (s *Service) Validate(ctx context.Context, bundle models.CaseBundle) []models.ValidatedDecision {
	decisions := s.engine.ValidateAll(bundle)

	for i, validated := range decisions {
		event := audit.Event{
			ClaimID:  bundle.ClaimID,
			PartyID:  validated.PartyID,
			Decision: string(validated.Decision),
		}
		switch {
		case validated.Decision == models.DecisionError:
			event.Action = audit.EventDecisionErrored
			event.Reason = validated.Reasoning
		case validated.Decision != bundle.Raw[i].Decision:
			event.Action = audit.EventDecisionCorrected
			event.Reason = validated.Reasoning
		default:
			event.Action = audit.EventDecisionUpheld
		}
		s.emit(ctx, event)
	}
	return decisions
}

// Get returns the stored result for a claim, consulting the cache first.
func (s *Service) Get(ctx context.Context, claimID string) (*models.CaseResult, error) {
	if claimID == "" {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "claim id is required")
	}

	if s.cache != nil {
		if result, ok := s.cache.Get(ctx, claimID); ok {
			s.metrics.IncrementCacheLookup("hit")
			return result, nil
		}
		s.metrics.IncrementCacheLookup("miss")
	}

	result, err := s.store.FindByClaimID(ctx, claimID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerrors.Wrap(err, domainerrors.CodeNotFound, "claim not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "load case result")
	}
	if s.cache != nil {
		s.cache.Set(ctx, result, s.cacheTTL)
	}
	return result, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			slog.String("claim_id", event.ClaimID),
			slog.String("action", event.Action),
			slog.String("error", err.Error()),
		)
	}
}

func processStatus(decisions []models.ValidatedDecision) string {
	for _, d := range decisions {
		if d.Decision == models.DecisionError {
			return "partial_error"
		}
	}
	return "ok"
}
