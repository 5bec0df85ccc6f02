package reconciler

import (
	"github.com/fairwaylab/scorelens/pkg/scorecard"
	"github.com/fairwaylab/scorelens/pkg/structure"
)

// Score cells outside this range after sanitization are nulled rather
// than kept: a 0 or a 19 in a cell is a misread, not a round of golf.
const (
	minSaneScore = 1
	maxSaneScore = 15
)

// Sanitize removes structurally invalid entries from a candidate card
// in place: holes outside [1,18], pars outside [3,5], duplicate hole
// numbers (first wins), player rows whose names match course metadata,
// and scores outside [1,15]. When the surviving hole count is not 9 or
// 18 the card is truncated to the nearest valid boundary instead of
// rejected; losing trailing holes beats losing the whole card.
func Sanitize(card *scorecard.Extracted) {
	if card == nil {
		return
	}

	keep := validHoles(card.Holes)
	keep = truncateHoles(keep)
	card.Holes = keep

	keepSet := make(map[int]bool, len(keep))
	for _, h := range keep {
		keepSet[h.HoleNumber] = true
	}

	players := card.Players[:0]
	for _, p := range card.Players {
		if structure.IsMetadataLabel(p.Name) {
			continue
		}
		p.Scores = sanitizeScores(p.Scores, keepSet)
		players = append(players, p)
	}
	card.Players = players

	card.RecomputeTotals()
}

func validHoles(holes []scorecard.HoleInfo) []scorecard.HoleInfo {
	seen := make(map[int]bool, len(holes))
	var keep []scorecard.HoleInfo
	for _, h := range holes {
		if h.HoleNumber < 1 || h.HoleNumber > 18 {
			continue
		}
		if h.Par < 3 || h.Par > 5 {
			continue
		}
		if seen[h.HoleNumber] {
			continue
		}
		seen[h.HoleNumber] = true
		keep = append(keep, h)
	}
	return keep
}

// truncateHoles enforces a 9- or 18-hole card: 10-17 holes truncate to
// the first 9, more than 18 truncate to the first 18. Counts of 9, 18,
// or fewer than 10 pass through unchanged.
func truncateHoles(holes []scorecard.HoleInfo) []scorecard.HoleInfo {
	switch n := len(holes); {
	case n > 18:
		return holes[:18]
	case n > 9 && n < 18:
		return holes[:9]
	default:
		return holes
	}
}

// sanitizeScores drops cells for removed holes and nulls out-of-range
// scores, keeping each cell aligned with the surviving hole list.
func sanitizeScores(scores []scorecard.PlayerHoleScore, keep map[int]bool) []scorecard.PlayerHoleScore {
	out := scores[:0]
	for _, s := range scores {
		if !keep[s.HoleNumber] {
			continue
		}
		if s.Score != nil && (*s.Score < minSaneScore || *s.Score > maxSaneScore) {
			s.Score = nil
			s.Confidence = ""
			s.Source = ""
		}
		out = append(out, s)
	}
	return out
}
