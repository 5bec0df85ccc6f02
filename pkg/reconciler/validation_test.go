package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

func cleanCard() *scorecard.Extracted {
	card := nineHoleCard([]int{4, 4, 3, 5, 4, 4, 3, 5, 4})
	addPlayer(card, "Sam", []*int{
		scorecard.IntPtr(5), scorecard.IntPtr(4), scorecard.IntPtr(3),
		scorecard.IntPtr(6), scorecard.IntPtr(4), scorecard.IntPtr(5),
		scorecard.IntPtr(3), scorecard.IntPtr(5), scorecard.IntPtr(4),
	})
	return card
}

func TestScorePerfectCard(t *testing.T) {
	assert.Equal(t, 100, Score(cleanCard(), 9))
}

func TestScoreHoleCountDelta(t *testing.T) {
	card := cleanCard()
	assert.Equal(t, 90, Score(card, 10))
	assert.Equal(t, 10, Score(card, 18))
}

func TestScoreNonSequentialHoles(t *testing.T) {
	card := cleanCard()
	card.Holes[3].HoleNumber = 12
	assert.Equal(t, 95, Score(card, 9))
}

func TestScoreBadPars(t *testing.T) {
	card := cleanCard()
	card.Holes[0].Par = 2
	card.Holes[1].Par = 6
	assert.Equal(t, 90, Score(card, 9))
}

func TestScoreZeroPlayers(t *testing.T) {
	card := nineHoleCard([]int{4, 4, 4, 4, 4, 4, 4, 4, 4})
	assert.Equal(t, 50, Score(card, 9))
}

func TestScoreOutliersCapped(t *testing.T) {
	card := nineHoleCard([]int{4, 4, 4, 4, 4, 4, 4, 4, 4})
	// Every score is 15 at par 4: 9 outliers and heavy average drift.
	scores := make([]*int, 9)
	for i := range scores {
		scores[i] = scorecard.IntPtr(15)
	}
	addPlayer(card, "Sam", scores)

	// 9 outliers x 2 = 18, plus 10 for average drift over 3.
	assert.Equal(t, 72, Score(card, 9))

	// 16 more outliers would exceed the cap; the deduction stops at 30.
	for i := 0; i < 3; i++ {
		addPlayer(card, string(rune('A'+i)), scores)
	}
	assert.Equal(t, 60, Score(card, 9))
}

func TestScoreCompleteness(t *testing.T) {
	card := nineHoleCard([]int{4, 4, 4, 4, 4, 4, 4, 4, 4})

	// 2 of 9 scored is under 30%.
	addPlayer(card, "Sparse", []*int{scorecard.IntPtr(4), scorecard.IntPtr(4), nil, nil, nil, nil, nil, nil, nil})
	assert.Equal(t, 80, Score(card, 9))

	// 4 of 9 scored is under 60% but at least 30%.
	card = nineHoleCard([]int{4, 4, 4, 4, 4, 4, 4, 4, 4})
	addPlayer(card, "Thin", []*int{
		scorecard.IntPtr(4), scorecard.IntPtr(4), scorecard.IntPtr(4), scorecard.IntPtr(4),
		nil, nil, nil, nil, nil,
	})
	assert.Equal(t, 90, Score(card, 9))
}

func TestScoreMonotonicUnderOutliers(t *testing.T) {
	card := cleanCard()
	base := Score(card, 9)

	prev := base
	for hole := 1; hole <= 9; hole++ {
		p := card.Player("Sam")
		p.Scores[hole-1].Score = scorecard.IntPtr(15)
		next := Score(card, 9)
		assert.LessOrEqual(t, next, prev, "adding outlier at hole %d must not raise the score", hole)
		prev = next
	}
}

func TestScoreFloorsAtZero(t *testing.T) {
	card := &scorecard.Extracted{}
	assert.Equal(t, 0, Score(card, 18))
	assert.Equal(t, 0, Score(nil, 9))
}
