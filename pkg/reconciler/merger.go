package reconciler

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/fairwaylab/scorelens/pkg/notation"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

// Handwriting fills may not drift further than this from par. The
// handwriting pass hallucinates under blur, so wildly implausible fills
// are cheaper to drop than to carry.
const maxFillDeviation = 7

// mergeHandwriting fills the empty cells of a structurally extracted
// card from the handwriting re-read. The merge only ever adds: a cell
// the structure pass read is never overwritten, whatever the re-read
// claims. Handwriting players with no structural counterpart are
// dropped; a player the grid never showed is more likely a misread
// label than a real person.
func mergeHandwriting(card *scorecard.Extracted, hw *HandwritingCard) {
	if card == nil || hw == nil || len(hw.Players) == 0 {
		return
	}

	byName := make(map[string][]string, len(hw.Players))
	for name, tokens := range hw.Players {
		byName[normalizeName(name)] = tokens
	}

	for pi := range card.Players {
		tokens, ok := byName[normalizeName(card.Players[pi].Name)]
		if !ok {
			continue
		}
		fillPlayer(&card.Players[pi], card, tokens)
	}
}

func fillPlayer(p *scorecard.PlayerInfo, card *scorecard.Extracted, tokens []string) {
	for i, tok := range tokens {
		if tok == "" || i >= len(p.Scores) {
			continue
		}
		cell := &p.Scores[i]
		if cell.Score != nil {
			continue
		}

		par := card.ParForHole(cell.HoleNumber)
		v := notation.Convert(tok, par, card.NotationStyle)
		if v == nil {
			continue
		}
		if diff := *v - par; diff > maxFillDeviation || diff < -maxFillDeviation {
			continue
		}
		p.SetScore(cell.HoleNumber, *v, par, scorecard.SourceHandwriting)
	}
}

// normalizeName folds a player name for matching across the two passes:
// case-insensitive, accent-insensitive, punctuation and whitespace
// stripped. "José R." and "jose r" identify the same player.
func normalizeName(name string) string {
	folded, _, err := transform.String(transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sortedPlayerNames returns the handwriting players in a stable order
// so assembled cards do not shuffle between runs.
func sortedPlayerNames(hw *HandwritingCard) []string {
	names := make([]string, 0, len(hw.Players))
	for name := range hw.Players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
