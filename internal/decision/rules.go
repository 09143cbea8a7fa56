package decision

import (
	"fmt"
	"strings"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
)

// Rule identifiers recorded in the applied-rules audit trail.
const (
	RuleZeroLiabilityGuard   = "zero_liability_guard"
	RuleFullLiability        = "full_liability_rejection"
	RuleNonPrimaryAcceptance = "non_primary_acceptance"
	RuleCarrierProtection    = "primary_carrier_protection"
	RulePrimaryMultiParty    = "primary_multi_party"
	RuleRecoveryValidation   = "recovery_validation"
	RuleRecoveryUpgrade      = "recovery_upgrade"
)

// acceptableShare reports whether liability sits on a split under which a
// non-primary party is force-accepted.
func acceptableShare(liability int) bool {
	switch liability {
	case 0, 25, 50, 75:
		return true
	}
	return false
}

// recoverableShare is the narrower split set required of at-fault siblings by
// the primary-carrier multi-party exception.
func recoverableShare(liability int) bool {
	switch liability {
	case 25, 50, 75:
		return true
	}
	return false
}

// zeroLiabilityGuard protects victims: a 0%-liability party rejected solely
// because a sibling carries 100% fault is corrected to ACCEPTED. The sibling
// must actually exist; a model hallucinating a 100% party does not trigger
// the guard.
func (e *Engine) zeroLiabilityGuard(w *working, bundle models.CaseBundle, partyIndex int) {
	fact := bundle.Parties[partyIndex]
	if fact.Liability != 0 || w.decision != models.DecisionRejected {
		return
	}
	if !citesSiblingFullLiability(w.reasoning, w.classification) {
		return
	}
	for j, p := range bundle.Parties {
		if j != partyIndex && p.FullLiability() {
			e.apply(w, RuleZeroLiabilityGuard, models.DecisionAccepted,
				"party carries 0% liability and was rejected only for another party's 100% fault",
				"zero-liability party protected")
			return
		}
	}
}

// citesSiblingFullLiability matches the model phrasings that blame a sibling's
// full fault for the rejection.
func citesSiblingFullLiability(reasoning, classification string) bool {
	s := strings.ToLower(reasoning + " " + classification)
	return strings.Contains(s, "100%") ||
		strings.Contains(s, "100 %") ||
		strings.Contains(s, "rule #1")
}

// fullLiabilityRejection enforces the universal 100% rule: a fully at-fault
// party is rejected regardless of carrier, with no exceptions.
func (e *Engine) fullLiabilityRejection(w *working, bundle models.CaseBundle, partyIndex int) {
	fact := bundle.Parties[partyIndex]
	if !fact.FullLiability() || w.decision == models.DecisionRejected {
		return
	}
	e.apply(w, RuleFullLiability, models.DecisionRejected,
		"party holds 100% liability; fully at-fault claims are always rejected",
		"rejected due to 100% liability")
}

// nonPrimaryAcceptance force-accepts parties insured elsewhere when their
// liability sits on a standard split. This rule explicitly overrides a model
// REJECTED.
func (e *Engine) nonPrimaryAcceptance(w *working, bundle models.CaseBundle, partyIndex int) {
	fact := bundle.Parties[partyIndex]
	if fact.FullLiability() || !acceptableShare(fact.Liability) {
		return
	}
	if e.isPrimary(fact) {
		return
	}
	if w.decision == models.DecisionAccepted || w.decision == models.DecisionAcceptedWithRecovery {
		return
	}
	e.apply(w, RuleNonPrimaryAcceptance, models.DecisionAccepted,
		fmt.Sprintf("party is not insured by the primary carrier and holds %d%% liability", fact.Liability),
		"non-primary carrier acceptance")
}

// carrierProtection rejects the current party (whoever they are, even a 0%
// victim) when any other party is fully at fault while insured elsewhere: the
// primary carrier does not accept claims whose fully-at-fault party belongs
// to another insurer.
func (e *Engine) carrierProtection(w *working, bundle models.CaseBundle, partyIndex int) {
	for j, p := range bundle.Parties {
		if j == partyIndex || !p.FullLiability() || e.isPrimary(p) {
			continue
		}
		if w.decision != models.DecisionRejected {
			e.apply(w, RuleCarrierProtection, models.DecisionRejected,
				fmt.Sprintf("party %s holds 100%% liability and is not insured by the primary carrier", p.PartyID),
				"primary carrier protection")
		}
		return
	}
}

// primaryMultiParty applies to primary-carrier parties below full liability
// that carrier protection has not already rejected: the claim is rejected when
// any at-fault sibling is insured elsewhere, unless every at-fault sibling is
// primary-insured with a liability share in {25,50,75}. The exception must
// hold universally across all at-fault siblings; when it does, the decision
// remains or becomes ACCEPTED, overriding a model REJECTED.
func (e *Engine) primaryMultiParty(w *working, bundle models.CaseBundle, partyIndex int) {
	fact := bundle.Parties[partyIndex]
	if !e.isPrimary(fact) || fact.Liability >= 100 || w.fired(RuleCarrierProtection) {
		return
	}

	atFault := bundle.AtFaultSiblings(partyIndex)
	if len(atFault) == 0 {
		return
	}

	exceptionHolds := true
	for _, j := range atFault {
		sibling := bundle.Parties[j]
		if !e.isPrimary(sibling) {
			e.apply(w, RulePrimaryMultiParty, models.DecisionRejected,
				fmt.Sprintf("at-fault party %s is not insured by the primary carrier", sibling.PartyID),
				"primary carrier multi-party rejection")
			return
		}
		if !recoverableShare(sibling.Liability) {
			exceptionHolds = false
		}
	}

	if exceptionHolds &&
		w.decision != models.DecisionAccepted &&
		w.decision != models.DecisionAcceptedWithRecovery {
		e.apply(w, RulePrimaryMultiParty, models.DecisionAccepted,
			"all at-fault parties are primary-carrier insured with standard liability shares",
			"primary carrier multi-party acceptance")
	}
}

// recoveryStep validates an ACCEPTED_WITH_RECOVERY working decision or
// upgrades an ACCEPTED one when qualifying evidence exists.
func (e *Engine) recoveryStep(w *working, bundle models.CaseBundle, partyIndex int) {
	fact := bundle.Parties[partyIndex]

	switch w.decision {
	case models.DecisionAcceptedWithRecovery:
		result := e.ValidateRecovery(bundle, partyIndex)
		if !result.Valid {
			e.apply(w, RuleRecoveryValidation, result.Corrected,
				"recovery not qualified: "+strings.Join(result.Reasons, "; "),
				"recovery downgraded")
			return
		}
		e.note(w, RuleRecoveryValidation, "recovery evidence: "+strings.Join(result.Reasons, "; "))

	case models.DecisionAccepted:
		if fact.Liability >= 100 {
			return
		}
		if reasons := e.upgradeEvidence(bundle, partyIndex); len(reasons) > 0 {
			e.apply(w, RuleRecoveryUpgrade, models.DecisionAcceptedWithRecovery,
				"recovery evidence found: "+strings.Join(reasons, "; "),
				"upgraded to accepted with recovery")
		}
	}
}
