package audit

import (
	"context"
	"time"
)

// Event is emitted from claim processing to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	ClaimID   string    `json:"claim_id"`
	PartyID   string    `json:"party_id,omitempty"`
	Action    string    `json:"action"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

const (
	EventCaseReceived      = "case_received"
	EventDecisionCorrected = "decision_corrected"
	EventDecisionUpheld    = "decision_upheld"
	EventDecisionErrored   = "decision_errored"
	EventCasePersisted     = "case_persisted"
)

// Store persists audit events append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByClaim(ctx context.Context, claimID string) ([]Event, error)
}
