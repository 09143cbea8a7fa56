package memory

import (
	"context"
	"sync"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
)

// Store keeps audit events in memory, grouped by claim. Used by tests and by
// deployments without Postgres.
type Store struct {
	mu     sync.RWMutex
	events map[string][]audit.Event
}

func New() *Store {
	return &Store{events: make(map[string][]audit.Event)}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ClaimID] = append(s.events[event.ClaimID], event)
	return nil
}

func (s *Store) ListByClaim(_ context.Context, claimID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[claimID]...), nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]audit.Event)
}
