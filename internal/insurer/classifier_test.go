package insurer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClassifier() *Classifier {
	return NewClassifier(Profile{
		Brand:          "Tawuniya",
		ArabicBrand:    "التعاونية",
		ArabicFullName: "شركة التعاونية للتأمين",
	})
}

func TestIsPrimary_EnglishName(t *testing.T) {
	c := testClassifier()

	cases := []struct {
		desc    string
		english string
		want    bool
	}{
		{"exact brand", "Tawuniya", true},
		{"brand prefix with company suffix", "Tawuniya Cooperative Insurance Company", true},
		{"uppercase OCR output", "TAWUNIYA INSURANCE", true},
		{"full keyword combination, brand not first", "The Company for Cooperative Insurance (Tawuniya)", true},
		{"abbreviated co", "Saudi Tawuniya Co", true},
		{"abbreviated single letter", "tawuniya c", true},
		{"abbreviated coop", "Tawuniya Coop", true},
		{"other carrier", "Malath Cooperative Insurance", false},
		{"other carrier with insurance keyword", "Walaa Insurance", false},
		{"empty", "", false},
		{"extractor missing marker", "could not identify", false},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, c.IsPrimary("", tc.english))
		})
	}
}

func TestIsPrimary_FreeTextFallback(t *testing.T) {
	c := testClassifier()

	cases := []struct {
		desc string
		name string
		want bool
	}{
		{"exact arabic full name", "شركة التعاونية للتأمين", true},
		{"arabic brand with insurance keyword", "التعاونية للتأمين", true},
		{"latin brand with cooperative keyword", "tawuniya cooperative", true},
		// A bare brand mention is not sufficient in the free-text field.
		{"bare brand", "Tawuniya", false},
		// Generic "cooperative" without the brand must not classify.
		{"generic cooperative carrier", "شركة ملاذ للتأمين التعاوني", false},
		{"generic english cooperative", "gulf cooperative insurance", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, c.IsPrimary(tc.name, ""))
		})
	}
}

func TestIsPrimary_EnglishTakesPriority(t *testing.T) {
	c := testClassifier()

	// English name resolves regardless of what the free-text field says.
	assert.True(t, c.IsPrimary("some other insurer", "Tawuniya Cooperative Insurance"))
	// And a non-matching English name still falls back to the free-text field.
	assert.True(t, c.IsPrimary("شركة التعاونية للتأمين", "unreadable scan"))
}

func TestIsPrimary_EmptyProfile(t *testing.T) {
	c := NewClassifier(Profile{})
	assert.False(t, c.IsPrimary("Tawuniya Insurance", "Tawuniya Insurance"))
}
