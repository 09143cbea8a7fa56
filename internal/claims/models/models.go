// Package models defines the claim decision domain types. Facts are extracted
// upstream and normalized once; the validation engine operates only on these
// strongly-typed values, never on raw heterogeneous records.
package models

import (
	"time"

	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
)

// Decision is the per-party claim outcome.
type Decision string

const (
	DecisionAccepted             Decision = "ACCEPTED"
	DecisionRejected             Decision = "REJECTED"
	DecisionAcceptedWithRecovery Decision = "ACCEPTED_WITH_RECOVERY"
	// DecisionError marks a failed model call. The engine passes it through
	// unchanged; no rule rewrites an error into a real decision.
	DecisionError Decision = "ERROR"
)

// Valid reports whether d is one of the known outcomes.
func (d Decision) Valid() bool {
	switch d {
	case DecisionAccepted, DecisionRejected, DecisionAcceptedWithRecovery, DecisionError:
		return true
	}
	return false
}

// RecoveryFlag is the tri-state recovery indicator from source data.
type RecoveryFlag string

const (
	RecoveryYes     RecoveryFlag = "true"
	RecoveryNo      RecoveryFlag = "false"
	RecoveryUnknown RecoveryFlag = "unknown"
)

// PartyFact is one party's extracted, pre-decision facts.
//
// Liability is authoritative and immutable once extracted; the validation
// engine never recomputes it, only reacts to it. Fields the extractor could
// not identify are empty (or nil for the expiry date) and are treated as
// absent by every rule, never guessed.
type PartyFact struct {
	PartyID            string       `json:"party_id"`
	Liability          int          `json:"liability"`
	InsurerName        string       `json:"insurer_name"`
	InsurerEnglishName string       `json:"insurer_english_name"`
	RecoveryFlag       RecoveryFlag `json:"recovery_flag"`
	ViolationText      string       `json:"violation_text,omitempty"`

	LicenseTypeRequested   string     `json:"license_type_requested,omitempty"`
	LicenseTypeFromVehicle string     `json:"license_type_from_vehicle,omitempty"`
	LicenseExpiry          *time.Time `json:"license_expiry,omitempty"`

	PolicyholderID string `json:"policyholder_id,omitempty"`
	VehicleOwnerID string `json:"vehicle_owner_id,omitempty"`
}

// AtFault reports whether the party carries any share of liability.
func (f PartyFact) AtFault() bool { return f.Liability > 0 }

// FullLiability reports whether the party is fully at fault.
func (f PartyFact) FullLiability() bool { return f.Liability == 100 }

// RawDecision is the unvalidated output of the decision source.
type RawDecision struct {
	Decision          Decision `json:"decision"`
	Reasoning         string   `json:"reasoning"`
	Classification    string   `json:"classification"`
	AppliedConditions []string `json:"applied_conditions,omitempty"`
}

// ValidatedDecision is the engine's corrected output for one party, with an
// append-only trail of which rules fired.
type ValidatedDecision struct {
	PartyID        string   `json:"party_id"`
	Decision       Decision `json:"decision"`
	Reasoning      string   `json:"reasoning"`
	Classification string   `json:"classification"`
	AppliedRules   []string `json:"applied_rules,omitempty"`
}

// CaseBundle carries all parties' facts and raw decisions for one accident.
// It is constructed fresh per claim and read-only during validation: each
// party's pass inspects siblings' original facts, never their corrected
// decisions, so rule evaluation stays order-independent across parties.
type CaseBundle struct {
	ClaimID string        `json:"claim_id"`
	Parties []PartyFact   `json:"parties"`
	Raw     []RawDecision `json:"raw_decisions"`
}

// Validate checks the bundle's shape before it reaches the engine: the rule
// battery indexes parties and raw decisions in lockstep and never re-checks
// liability bounds.
func (b CaseBundle) Validate() error {
	if b.ClaimID == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "claim_id is required")
	}
	if len(b.Parties) == 0 {
		return domainerrors.New(domainerrors.CodeBadRequest, "parties must not be empty")
	}
	if len(b.Parties) != len(b.Raw) {
		return domainerrors.New(domainerrors.CodeBadRequest,
			"raw_decisions must match parties one to one")
	}
	for i, p := range b.Parties {
		if p.Liability < 0 || p.Liability > 100 {
			return domainerrors.Newf(domainerrors.CodeBadRequest,
				"party %s liability out of range", p.PartyID)
		}
		if !b.Raw[i].Decision.Valid() {
			return domainerrors.Newf(domainerrors.CodeBadRequest,
				"party %s decision %q unrecognized", p.PartyID, b.Raw[i].Decision)
		}
	}
	return nil
}

// AtFaultSiblings returns the indexes of all other parties with liability > 0.
func (b CaseBundle) AtFaultSiblings(partyIndex int) []int {
	var out []int
	for i, p := range b.Parties {
		if i != partyIndex && p.AtFault() {
			out = append(out, i)
		}
	}
	return out
}

// CaseResult is the validated output for one accident claim.
type CaseResult struct {
	ClaimID   string              `json:"claim_id"`
	Decisions []ValidatedDecision `json:"decisions"`
	CreatedAt time.Time           `json:"created_at"`
}
