package decision

import (
	"fmt"
	"strings"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
)

// RecoveryResult is the outcome of qualifying an ACCEPTED_WITH_RECOVERY
// decision. When not valid, Corrected carries the decision the rulebook
// dictates instead.
type RecoveryResult struct {
	Valid     bool
	Corrected models.Decision
	Reasons   []string
}

// ValidateRecovery determines whether ACCEPTED_WITH_RECOVERY is justified for
// the party at partyIndex.
//
// Qualification requires, in order:
//  1. liability below 100 (otherwise the decision corrects to REJECTED),
//  2. at least one at-fault sibling to attribute the recovery to,
//  3. violation evidence on the current party, or failing that, on any
//     at-fault sibling.
//
// Evidence categories, checked in priority order on each inspected party:
// the explicit recovery flag, a license-type mismatch between the requested
// license and the one the vehicle class demands, and narrative violation
// keywords. All matched evidence is returned for the audit trail.
func (e *Engine) ValidateRecovery(bundle models.CaseBundle, partyIndex int) RecoveryResult {
	fact := bundle.Parties[partyIndex]

	if fact.Liability >= 100 {
		return RecoveryResult{
			Valid:     false,
			Corrected: models.DecisionRejected,
			Reasons:   []string{"recovery requires liability below 100%"},
		}
	}

	reasons := evidenceFor(fact, "current party")

	atFault := bundle.AtFaultSiblings(partyIndex)
	if len(atFault) == 0 {
		return RecoveryResult{
			Valid:     false,
			Corrected: models.DecisionAccepted,
			Reasons:   []string{"no at-fault party to attribute recovery to"},
		}
	}

	if len(reasons) == 0 {
		for _, j := range atFault {
			sibling := bundle.Parties[j]
			reasons = append(reasons, evidenceFor(sibling, "party "+sibling.PartyID)...)
		}
	}

	if len(reasons) == 0 {
		return RecoveryResult{
			Valid:     false,
			Corrected: models.DecisionAccepted,
			Reasons:   []string{"no recovery evidence on current party or any at-fault party"},
		}
	}

	return RecoveryResult{
		Valid:     true,
		Corrected: models.DecisionAcceptedWithRecovery,
		Reasons:   reasons,
	}
}

// upgradeEvidence collects recovery evidence for the ACCEPTED to
// ACCEPTED_WITH_RECOVERY upgrade path. Recovery needs an at-fault sibling to
// pursue, so without one no evidence qualifies. Unlike validation of a
// model-produced recovery decision, the upgrade only honors sibling evidence
// when that sibling is insured by the primary carrier.
func (e *Engine) upgradeEvidence(bundle models.CaseBundle, partyIndex int) []string {
	atFault := bundle.AtFaultSiblings(partyIndex)
	if len(atFault) == 0 {
		return nil
	}

	reasons := evidenceFor(bundle.Parties[partyIndex], "current party")
	if len(reasons) > 0 {
		return reasons
	}

	for _, j := range atFault {
		sibling := bundle.Parties[j]
		if !e.isPrimary(sibling) {
			continue
		}
		reasons = append(reasons, evidenceFor(sibling, "party "+sibling.PartyID)...)
	}
	return reasons
}

// evidenceFor inspects one party for recovery-trigger conditions. The source
// label ties each matched item back to the party it was found on.
func evidenceFor(fact models.PartyFact, source string) []string {
	var reasons []string

	if fact.RecoveryFlag == models.RecoveryYes {
		reasons = append(reasons, source+": explicit recovery flag set")
	}

	if mismatch, detail := licenseMismatch(fact); mismatch {
		reasons = append(reasons, source+": "+detail)
	}

	for _, match := range matchViolations(fact.ViolationText) {
		reasons = append(reasons, source+": "+match)
	}

	return reasons
}

// licenseMismatch reports whether the license type the vehicle class demands
// differs from the one on the request. Both sides must be identified; "any
// license" vehicle classes never mismatch; and a containment either way (e.g.
// "transport" vs "heavy transport") counts as compatible, not a mismatch.
func licenseMismatch(fact models.PartyFact) (bool, string) {
	requested := strings.ToLower(strings.TrimSpace(fact.LicenseTypeRequested))
	fromVehicle := strings.ToLower(strings.TrimSpace(fact.LicenseTypeFromVehicle))

	if requested == "" || fromVehicle == "" {
		return false, ""
	}
	if fromVehicle == "any license" || fromVehicle == "any" {
		return false, ""
	}
	if requested == fromVehicle {
		return false, ""
	}
	if strings.Contains(requested, fromVehicle) || strings.Contains(fromVehicle, requested) {
		return false, ""
	}

	return true, fmt.Sprintf("license type mismatch: vehicle requires %q, request holds %q",
		fact.LicenseTypeFromVehicle, fact.LicenseTypeRequested)
}
