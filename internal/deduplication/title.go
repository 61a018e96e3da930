package deduplication

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// NormalizeTitle produces the comparison form of a headline: lowercased,
// punctuation stripped, whitespace runs collapsed to single spaces, and
// leading/trailing whitespace trimmed. Letters, digits and underscores
// survive; everything else is punctuation as far as headlines go.
func (d *Deduper) NormalizeTitle(title string) string {
	title = strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleSimilarity computes a similarity ratio in [0.0, 1.0] between two
// headlines after normalization. The ratio is the longest-matching-blocks
// sequence measure computed per character: 1.0 for identical normalized
// titles, 0.0 for disjoint ones, and symmetric in its arguments.
func (d *Deduper) TitleSimilarity(a, b string) float64 {
	na := d.NormalizeTitle(a)
	nb := d.NormalizeTitle(b)
	if na == nb {
		return 1.0
	}
	// The matcher's tie-breaking is order-sensitive; pinning the operand
	// order keeps the measure symmetric.
	if na > nb {
		na, nb = nb, na
	}
	return difflib.NewMatcher(splitRunes(na), splitRunes(nb)).Ratio()
}

// splitRunes explodes a string into one-rune elements for the sequence
// matcher, which compares slices of strings.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
