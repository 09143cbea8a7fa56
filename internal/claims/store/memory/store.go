// Package memory implements the case store in process memory. It backs tests
// and deployments without Postgres.
package memory

import (
	"context"
	"sync"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/sentinel"
)

type Store struct {
	mu      sync.RWMutex
	results map[string]*models.CaseResult
}

func New() *Store {
	return &Store{results: make(map[string]*models.CaseResult)}
}

func (s *Store) SaveCase(_ context.Context, result *models.CaseResult) error {
	if result == nil || result.ClaimID == "" {
		return sentinel.ErrInvalidState
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *result
	stored.Decisions = append([]models.ValidatedDecision(nil), result.Decisions...)
	s.results[result.ClaimID] = &stored
	return nil
}

func (s *Store) FindByClaimID(_ context.Context, claimID string) (*models.CaseResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.results[claimID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	result := *stored
	result.Decisions = append([]models.ValidatedDecision(nil), stored.Decisions...)
	return &result, nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[string]*models.CaseResult)
}
