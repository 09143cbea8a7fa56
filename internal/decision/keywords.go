package decision

import "strings"

// ViolationType groups recovery-trigger keywords by the violation they
// evidence. The groups mirror the carrier rulebook: only these five violation
// classes justify accepting a claim with a right of recovery.
type ViolationType string

const (
	ViolationWrongWay   ViolationType = "wrong_way_driving"
	ViolationRedLight   ViolationType = "red_light"
	ViolationOverload   ViolationType = "passenger_overload"
	ViolationUnlicensed ViolationType = "unlicensed_driving"
	ViolationTheft      ViolationType = "vehicle_theft"
)

// violationKeywords holds the bilingual match set per violation type. Latin
// keywords are matched case-insensitively; Arabic keywords by direct
// substring. Narrative text upstream is noisy OCR output, so keywords stay
// short fragments.
var violationKeywords = []struct {
	Type     ViolationType
	Keywords []string
}{
	{
		Type: ViolationWrongWay,
		Keywords: []string{
			"wrong way", "wrong-way", "opposite direction", "against traffic",
			"عكس السير", "عكس الاتجاه", "عكس اتجاه",
		},
	},
	{
		Type: ViolationRedLight,
		Keywords: []string{
			"red light", "red-light", "crossed red", "ran the signal", "traffic signal violation",
			"قطع الإشارة", "تجاوز الإشارة", "الإشارة الحمراء",
		},
	},
	{
		Type: ViolationOverload,
		Keywords: []string{
			"overload", "passenger capacity", "excess passengers", "exceeding the permitted number",
			"زيادة الركاب", "تجاوز عدد الركاب", "الحمولة الزائدة",
		},
	},
	{
		Type: ViolationUnlicensed,
		Keywords: []string{
			"without a license", "without license", "no driving license", "unlicensed",
			"expired license", "license expired",
			"بدون رخصة", "لا يحمل رخصة", "رخصة منتهية", "منتهية الصلاحية",
		},
	},
	{
		Type: ViolationTheft,
		Keywords: []string{
			"theft", "stolen",
			"سرقة", "مسروقة", "مسروقه",
		},
	},
}

// matchViolations returns one reason per violation type whose keyword set
// matched the narrative text. The matched keyword is preserved for the audit
// trail.
func matchViolations(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var reasons []string
	for _, group := range violationKeywords {
		for _, kw := range group.Keywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				reasons = append(reasons, string(group.Type)+": matched keyword \""+kw+"\"")
				break
			}
		}
	}
	return reasons
}
