package gemini

import (
	"encoding/json"
	"strings"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
)

// modelAnswer mirrors the JSON shape the rulebook prompt demands.
type modelAnswer struct {
	Decision          string   `json:"decision"`
	Reasoning         string   `json:"reasoning"`
	Classification    string   `json:"classification"`
	AppliedConditions []string `json:"applied_conditions"`
}

// parseAnswer turns raw model text into a RawDecision. The model is told to
// emit bare JSON but occasionally wraps it in code fences or prose, so parsing
// is lenient: fences are stripped and the outermost JSON object is extracted
// before unmarshaling.
func parseAnswer(raw string) (models.RawDecision, error) {
	text := stripCodeFences(strings.TrimSpace(raw))
	text = extractJSONObject(text)
	if text == "" {
		return models.RawDecision{}, domainerrors.New(domainerrors.CodeBadRequest,
			"model response contains no JSON object")
	}

	var answer modelAnswer
	if err := json.Unmarshal([]byte(text), &answer); err != nil {
		return models.RawDecision{}, domainerrors.Wrap(err, domainerrors.CodeBadRequest,
			"model response is not valid JSON")
	}

	decision, ok := normalizeDecision(answer.Decision)
	if !ok {
		return models.RawDecision{}, domainerrors.Newf(domainerrors.CodeBadRequest,
			"model produced unrecognized decision %q", answer.Decision)
	}

	return models.RawDecision{
		Decision:          decision,
		Reasoning:         answer.Reasoning,
		Classification:    answer.Classification,
		AppliedConditions: answer.AppliedConditions,
	}, nil
}

// normalizeDecision maps the spelling drift observed in model output onto the
// canonical decision enum.
func normalizeDecision(s string) (models.Decision, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch normalized {
	case "ACCEPTED", "ACCEPT":
		return models.DecisionAccepted, true
	case "REJECTED", "REJECT", "DECLINED", "DENIED":
		return models.DecisionRejected, true
	case "ACCEPTED_WITH_RECOVERY", "ACCEPT_WITH_RECOVERY", "ACCEPTED_W_RECOVERY":
		return models.DecisionAcceptedWithRecovery, true
	}
	return "", false
}

// stripCodeFences removes a surrounding markdown fence, with or without a
// language tag.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{}") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the outermost {...} span, or "" when none exists.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
