package structure

import (
	"regexp"
	"strings"
)

// Summary and header labels that must never be mistaken for holes or
// players. Out/In/Total columns are the front-nine, back-nine, and
// round summaries.
var nonHoleLabels = map[string]bool{
	"out":   true,
	"in":    true,
	"total": true,
	"tot":   true,
	"hole":  true,
	"holes": true,
	"net":   true,
}

var (
	parLabelPattern = regexp.MustCompile(`(?i)(?:^|\s)(?:men'?s?\s*)?par(?:\s|$)`)

	// Rows that look like course metadata rather than players: handicap
	// rows, pace-of-play rows, tee boxes with slope/rating numbers, and
	// gender-qualified header rows.
	metadataLabelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^h(andi)?ca?p\b`),
		regexp.MustCompile(`(?i)^hdcp\b`),
		regexp.MustCompile(`(?i)^par\b`),
		regexp.MustCompile(`(?i)pace\s+of\s+play`),
		regexp.MustCompile(`(?i)^(blue|white|red|gold|black|green|silver|yellow|champion)\b.*\d`),
		regexp.MustCompile(`(?i)^(men|men's|mens|ladies|lady|women|women's|womens)\b`),
		regexp.MustCompile(`(?i)^(yard(age|s)?|meters?|slope|rating|date|scorer|attest)`),
	}
)

// isNonHoleLabel reports whether a cell's text marks a column that must
// be excluded before hole-sequence testing: summary labels and short
// alphabetic tokens presumed to be player initials.
func isNonHoleLabel(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	if nonHoleLabels[text] {
		return true
	}
	// Short alphabetic tokens in a header row are player initials.
	if len(text) <= 3 && isAlpha(text) {
		return true
	}
	return false
}

// isParLabel reports whether a row label identifies the par row.
func isParLabel(text string) bool {
	return parLabelPattern.MatchString(text)
}

// IsMetadataLabel reports whether a row label marks course metadata
// rather than a player. The sanitizer applies the same test post-hoc.
func IsMetadataLabel(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	if nonHoleLabels[lower] {
		return true
	}
	for _, p := range metadataLabelPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
