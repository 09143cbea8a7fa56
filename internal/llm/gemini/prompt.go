package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
)

// rulebookPrompt pins the decision rulebook the model must follow. The
// deterministic validation layer corrects its output afterwards, so the prompt
// optimizes for structured, parseable answers over exhaustive rule coverage.
const rulebookPrompt = `You are a motor-insurance claim adjudicator. You receive the facts of one
accident party together with the facts of every other party involved in the
same accident. Decide the claim for the CURRENT party only.

Rulebook:
1. A party holding 100% liability is always REJECTED.
2. A party holding 0% liability that is rejected only because another party
   is fully at fault must instead be ACCEPTED.
3. A party with liability in {25, 50, 75} is normally ACCEPTED.
4. ACCEPTED_WITH_RECOVERY applies only when liability is below 100% and a
   specific violation justifies recovery: an explicit recovery flag, a
   mismatch between the license type held and the license type the vehicle
   class requires, driving the wrong way, crossing a red light, passenger
   overload, driving unlicensed, or a stolen vehicle.

Respond with ONLY a JSON object, no commentary:
{
  "decision": "ACCEPTED" | "REJECTED" | "ACCEPTED_WITH_RECOVERY",
  "reasoning": "<short explanation citing the facts used>",
  "classification": "<one-line category of the outcome>",
  "applied_conditions": ["<rulebook condition labels>"]
}`

// promptParty is the fact projection sent to the model. Internal identifiers
// stay out of the prompt.
type promptParty struct {
	PartyID                string `json:"party_id"`
	Liability              int    `json:"liability_percent"`
	InsurerName            string `json:"insurer_name,omitempty"`
	InsurerEnglishName     string `json:"insurer_english_name,omitempty"`
	RecoveryFlag           string `json:"recovery_flag,omitempty"`
	ViolationText          string `json:"violation_text,omitempty"`
	LicenseTypeRequested   string `json:"license_type_requested,omitempty"`
	LicenseTypeFromVehicle string `json:"license_type_from_vehicle,omitempty"`
}

func buildUserPrompt(bundle models.CaseBundle, partyIndex int) (string, error) {
	current := toPromptParty(bundle.Parties[partyIndex])

	others := make([]promptParty, 0, len(bundle.Parties)-1)
	for i, p := range bundle.Parties {
		if i != partyIndex {
			others = append(others, toPromptParty(p))
		}
	}

	payload, err := json.Marshal(struct {
		ClaimID      string        `json:"claim_id"`
		CurrentParty promptParty   `json:"current_party"`
		OtherParties []promptParty `json:"other_parties"`
	}{
		ClaimID:      bundle.ClaimID,
		CurrentParty: current,
		OtherParties: others,
	})
	if err != nil {
		return "", fmt.Errorf("marshal prompt payload: %w", err)
	}

	var b strings.Builder
	b.WriteString("Decide the claim for current_party. Respond with only the JSON object.\n")
	b.WriteString("CASE_FACTS:\n")
	b.Write(payload)
	return b.String(), nil
}

func toPromptParty(fact models.PartyFact) promptParty {
	return promptParty{
		PartyID:                fact.PartyID,
		Liability:              fact.Liability,
		InsurerName:            fact.InsurerName,
		InsurerEnglishName:     fact.InsurerEnglishName,
		RecoveryFlag:           string(fact.RecoveryFlag),
		ViolationText:          fact.ViolationText,
		LicenseTypeRequested:   fact.LicenseTypeRequested,
		LicenseTypeFromVehicle: fact.LicenseTypeFromVehicle,
	}
}
