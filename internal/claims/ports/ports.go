// Package ports defines the interfaces the claims service depends on.
// Implementations live in their own packages; tests substitute generated
// mocks.
package ports

import (
	"context"
	"time"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
)

// DecisionSource produces the advisory model decision for one party. It never
// returns an error: failures surface as an ERROR decision so one party's
// failed call cannot sink its siblings.
type DecisionSource interface {
	Decide(ctx context.Context, bundle models.CaseBundle, partyIndex int) models.RawDecision
}

// CaseStore persists validated case results.
type CaseStore interface {
	// SaveCase stores the result. A claim can be re-processed; the stored
	// result is replaced.
	SaveCase(ctx context.Context, result *models.CaseResult) error

	// FindByClaimID returns the stored result, or sentinel.ErrNotFound.
	FindByClaimID(ctx context.Context, claimID string) (*models.CaseResult, error)
}

// ResultCache fronts the case store for repeated reads of recently validated
// claims. Implementations must treat cache errors as misses.
type ResultCache interface {
	Get(ctx context.Context, claimID string) (*models.CaseResult, bool)
	Set(ctx context.Context, result *models.CaseResult, ttl time.Duration)
	Invalidate(ctx context.Context, claimID string)
}

// AuditPublisher records processing milestones.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
