package gemini

import (
	"fmt"
	"strings"

	"github.com/fairwaylab/scorelens/pkg/reconciler"
)

// gridPrompt asks for a faithful cell-by-cell transcription. The model
// must not interpret scores; interpretation happens locally where it
// can be tested.
const gridPrompt = `You are reading a photo of a golf scorecard.

Transcribe the printed and handwritten text into a grid of rows and
columns, exactly as laid out on the card. Do not interpret, convert, or
correct any value. Keep header rows (HOLE, PAR, yardage, handicap) and
summary columns (OUT, IN, TOTAL) in place. Use "" for cells you cannot
read.

Respond with JSON only, in this shape:
{"rows": [["HOLE","1","2","..."], ["PAR","4","5","..."], ["PlayerName","5","4","..."]]}`

// layoutPrompt is the coarse probe: shape only, no content.
const layoutPrompt = `You are looking at a photo of a golf scorecard.

Classify its overall layout. Do not read individual scores.

Respond with JSON only:
{
  "hole_count": 9 or 18,
  "layout_type": "standard" or "continuous",
  "has_summary_columns": true/false,
  "has_initial_columns": true/false,
  "row_oriented": true/false,
  "confidence": 0.0 to 1.0
}`

// scoresPrompt builds the handwriting re-read prompt, seeded with the
// structural context when available so the model fills a known grid
// instead of inventing one.
func scoresPrompt(hint *reconciler.Hint) string {
	var b strings.Builder
	b.WriteString(`You are reading the handwritten scores on a photo of a golf scorecard.

Focus on faint, small, or sloppy handwriting that a document scanner
would miss. Transcribe each player's per-hole marks exactly as written:
keep "+1", "-2", "E" and plain numerals as-is. Use "" for holes with no
readable mark.
`)

	if hint != nil {
		if hint.HoleCount > 0 {
			fmt.Fprintf(&b, "\nThe card has %d holes.", hint.HoleCount)
		}
		if len(hint.Pars) > 0 {
			fmt.Fprintf(&b, "\nThe par values are %s.", joinInts(hint.Pars))
		}
		if len(hint.Players) > 0 {
			fmt.Fprintf(&b, "\nThe player names on the card are: %s.", strings.Join(hint.Players, ", "))
		}
	}

	b.WriteString(`

Respond with JSON only, in this shape:
{"course_name": "...", "players": {"PlayerName": ["5", "4", "+1", "", "..."]}}`)
	return b.String()
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
