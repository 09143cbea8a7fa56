// Package decision implements the deterministic validation layer that sits on
// top of the language-model decision source. The model's raw output is
// inspected against the structured facts of every party in the accident and
// corrected by a strictly ordered rule battery; rule order is part of the
// contract, not an implementation detail.
package decision

import (
	"log/slog"
	"strings"
	"time"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/decision/metrics"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/insurer"
)

// Engine applies the rule battery. It performs no I/O: every evaluation is a
// pure computation over an already-materialized CaseBundle, so the engine is
// safe to call concurrently for different parties of the same bundle.
type Engine struct {
	classifier *insurer.Classifier
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewEngine constructs the validation engine. Logger and metrics may be nil.
func NewEngine(classifier *insurer.Classifier, logger *slog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		classifier: classifier,
		logger:     logger,
		metrics:    m,
	}
}

// working is the mutable decision state threaded through the rule battery.
// Each rule reads the current decision and conditionally rewrites it; reasons
// accumulate, they are never replaced.
type working struct {
	decision       models.Decision
	reasoning      string
	classification string
	applied        []string
}

func (w *working) fired(rule string) bool {
	for _, r := range w.applied {
		if r == rule {
			return true
		}
	}
	return false
}

// Validate runs the full ordered battery for one party and returns the
// corrected decision. Sibling parties are read from their original facts
// only; their corrected decisions are never consulted, which keeps the result
// independent of evaluation order. Re-running Validate on its own output
// yields the same final decision.
func (e *Engine) Validate(bundle models.CaseBundle, partyIndex int) models.ValidatedDecision {
	start := time.Now()
	fact := bundle.Parties[partyIndex]
	raw := bundle.Raw[partyIndex]

	// Upstream failures pass through untouched: no rule rewrites an ERROR
	// into a real decision.
	if raw.Decision == models.DecisionError {
		return models.ValidatedDecision{
			PartyID:        fact.PartyID,
			Decision:       models.DecisionError,
			Reasoning:      raw.Reasoning,
			Classification: raw.Classification,
		}
	}

	w := &working{
		decision:       raw.Decision,
		reasoning:      raw.Reasoning,
		classification: raw.Classification,
	}

	// Strict priority order. Later rules see earlier rules' rewrites within
	// this same pass.
	e.zeroLiabilityGuard(w, bundle, partyIndex)
	e.fullLiabilityRejection(w, bundle, partyIndex)
	e.nonPrimaryAcceptance(w, bundle, partyIndex)
	e.carrierProtection(w, bundle, partyIndex)
	e.primaryMultiParty(w, bundle, partyIndex)
	e.recoveryStep(w, bundle, partyIndex)

	if e.metrics != nil {
		e.metrics.IncrementOutcome(string(w.decision))
		e.metrics.ObserveValidateLatency(time.Since(start))
	}
	if e.logger != nil && w.decision != raw.Decision {
		e.logger.Debug("decision corrected",
			"claim_id", bundle.ClaimID,
			"party_id", fact.PartyID,
			"raw_decision", raw.Decision,
			"final_decision", w.decision,
			"applied_rules", w.applied,
		)
	}

	return models.ValidatedDecision{
		PartyID:        fact.PartyID,
		Decision:       w.decision,
		Reasoning:      w.reasoning,
		Classification: w.classification,
		AppliedRules:   w.applied,
	}
}

// ValidateAll runs Validate for every party of the bundle.
func (e *Engine) ValidateAll(bundle models.CaseBundle) []models.ValidatedDecision {
	out := make([]models.ValidatedDecision, len(bundle.Parties))
	for i := range bundle.Parties {
		out[i] = e.Validate(bundle, i)
	}
	return out
}

func (e *Engine) isPrimary(fact models.PartyFact) bool {
	return e.classifier.IsPrimary(fact.InsurerName, fact.InsurerEnglishName)
}

// apply rewrites the working decision and appends the reason and rule name to
// the audit trail. Re-applying an identical correction (as happens when the
// engine re-validates its own output) does not duplicate trail entries.
func (e *Engine) apply(w *working, rule string, decision models.Decision, reason, classification string) {
	w.decision = decision
	if classification != "" {
		w.classification = classification
	}
	e.note(w, rule, reason)
	if e.metrics != nil {
		e.metrics.IncrementRuleFired(rule)
	}
}

// note appends a reason to the trail without changing the decision.
func (e *Engine) note(w *working, rule string, reason string) {
	if !strings.Contains(w.reasoning, reason) {
		if w.reasoning == "" {
			w.reasoning = reason
		} else {
			w.reasoning += " | " + reason
		}
	}
	w.applied = append(w.applied, rule)
}
