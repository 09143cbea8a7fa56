// Package insurer classifies free-text carrier names. The validation engine
// needs exactly one predicate: is this party insured by the distinguished
// primary carrier or by anyone else. Names arrive OCR'd, abbreviated, and in
// either language, so classification is keyword-based and case-insensitive.
package insurer

import "strings"

// Profile identifies the primary carrier. All comparisons against Brand are
// case-insensitive; ArabicFullName is matched exactly after trimming.
type Profile struct {
	// Brand is the carrier's canonical Latin token, e.g. "Tawuniya".
	Brand string
	// ArabicBrand is the carrier's Arabic brand token.
	ArabicBrand string
	// ArabicFullName is the carrier's full registered Arabic name.
	ArabicFullName string
}

// Classifier is a pure predicate over insurer names. It holds only the
// profile; no state, no side effects.
type Classifier struct {
	brand          string
	arabicBrand    string
	arabicFullName string
}

// NewClassifier builds a classifier for the given carrier profile.
func NewClassifier(p Profile) *Classifier {
	return &Classifier{
		brand:          strings.ToLower(strings.TrimSpace(p.Brand)),
		arabicBrand:    strings.TrimSpace(p.ArabicBrand),
		arabicFullName: strings.TrimSpace(p.ArabicFullName),
	}
}

// abbreviations accepted directly after the brand token in English names.
// OCR frequently truncates "Cooperative Insurance Co." down to one of these.
var abbreviations = map[string]bool{
	"c":         true,
	"co":        true,
	"co.":       true,
	"coop":      true,
	"insurance": true,
}

// IsPrimary reports whether the named insurer is the primary carrier.
//
// The English name is authoritative: a brand-prefixed name, the full
// brand + cooperative + insurance combination, or a recognized abbreviation
// all classify as primary. The free-text name is a fallback and requires the
// brand to co-occur with "insurance" or "cooperative" (a bare brand or a
// generic "cooperative" mention is not enough), or an exact full-name match.
func (c *Classifier) IsPrimary(name, englishName string) bool {
	if c.brand == "" {
		return false
	}

	if english := normalize(englishName); english != "" {
		if strings.HasPrefix(english, c.brand) {
			return true
		}
		if strings.Contains(english, c.brand) &&
			strings.Contains(english, "cooperative") &&
			strings.Contains(english, "insurance") {
			return true
		}
		if c.brandFollowedByAbbreviation(english) {
			return true
		}
	}

	if raw := strings.TrimSpace(name); raw != "" {
		if raw == c.arabicFullName && c.arabicFullName != "" {
			return true
		}
		lowered := strings.ToLower(raw)
		hasBrand := strings.Contains(lowered, c.brand) ||
			(c.arabicBrand != "" && strings.Contains(raw, c.arabicBrand))
		hasQualifier := strings.Contains(lowered, "insurance") ||
			strings.Contains(lowered, "cooperative") ||
			strings.Contains(raw, "تأمين") ||
			strings.Contains(raw, "تعاون")
		if hasBrand && hasQualifier {
			return true
		}
	}

	return false
}

// brandFollowedByAbbreviation scans token pairs for "<brand> <abbrev>".
func (c *Classifier) brandFollowedByAbbreviation(english string) bool {
	fields := strings.Fields(english)
	for i := 0; i < len(fields)-1; i++ {
		if fields[i] == c.brand && abbreviations[fields[i+1]] {
			return true
		}
	}
	return false
}

// normalize lowercases and drops markers the extractor uses for missing data.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "unidentified" || strings.Contains(s, "not identify") || strings.Contains(s, "not identified") {
		return ""
	}
	return s
}
