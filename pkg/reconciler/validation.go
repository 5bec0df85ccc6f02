package reconciler

import "github.com/fairwaylab/scorelens/pkg/scorecard"

// Validation scoring is deductive: a candidate starts at 100 and loses
// points for every structural or statistical defect. The weights encode
// how disqualifying each defect is, with a missing player roster worth
// half the total on its own.
const (
	perfectScore = 100

	holeDeltaPenalty     = 10 // per hole of deviation from the expected count
	nonSequentialPenalty = 5
	badParPenalty        = 5 // per par outside [3,5]
	noPlayersPenalty     = 50
	outlierPenalty       = 2 // per score more than outlierBound from par
	outlierPenaltyCap    = 30
	sparsePenalty        = 20 // per player with under sparseFraction scored
	thinPenalty          = 10 // per player with under thinFraction scored
	skewPenalty          = 10 // card-average score drifting past par average

	outlierBound   = 7
	sparseFraction = 0.30
	thinFraction   = 0.60
	maxAvgDrift    = 3.0
)

// Score grades a candidate scorecard from 0 to 100 against the expected
// hole count. It never rejects; ranking the candidates is the runner's
// job and a low score simply loses.
func Score(card *scorecard.Extracted, expectedHoles int) int {
	if card == nil {
		return 0
	}
	score := perfectScore

	delta := len(card.Holes) - expectedHoles
	if delta < 0 {
		delta = -delta
	}
	score -= holeDeltaPenalty * delta

	if !sequentialHoles(card.Holes) {
		score -= nonSequentialPenalty
	}

	for _, h := range card.Holes {
		if h.Par < 3 || h.Par > 5 {
			score -= badParPenalty
		}
	}

	if len(card.Players) == 0 {
		score -= noPlayersPenalty
	}

	score -= outlierDeduction(card)
	score -= completenessDeduction(card)
	score -= skewDeduction(card)

	if score < 0 {
		score = 0
	}
	return score
}

func sequentialHoles(holes []scorecard.HoleInfo) bool {
	for i, h := range holes {
		if h.HoleNumber != i+1 {
			return false
		}
	}
	return true
}

func outlierDeduction(card *scorecard.Extracted) int {
	deduction := 0
	for _, p := range card.Players {
		for _, s := range p.Scores {
			if s.Score == nil {
				continue
			}
			diff := *s.Score - card.ParForHole(s.HoleNumber)
			if diff < 0 {
				diff = -diff
			}
			if diff > outlierBound {
				deduction += outlierPenalty
			}
		}
	}
	if deduction > outlierPenaltyCap {
		deduction = outlierPenaltyCap
	}
	return deduction
}

func completenessDeduction(card *scorecard.Extracted) int {
	if len(card.Holes) == 0 {
		return 0
	}
	deduction := 0
	for _, p := range card.Players {
		frac := float64(p.ScoredHoles()) / float64(len(card.Holes))
		switch {
		case frac < sparseFraction:
			deduction += sparsePenalty
		case frac < thinFraction:
			deduction += thinPenalty
		}
	}
	return deduction
}

func skewDeduction(card *scorecard.Extracted) int {
	var scoreSum, scoreN, parSum int
	for _, p := range card.Players {
		for _, s := range p.Scores {
			if s.Score == nil {
				continue
			}
			scoreSum += *s.Score
			parSum += card.ParForHole(s.HoleNumber)
			scoreN++
		}
	}
	if scoreN == 0 {
		return 0
	}
	drift := (float64(scoreSum) - float64(parSum)) / float64(scoreN)
	if drift < 0 {
		drift = -drift
	}
	if drift > maxAvgDrift {
		return skewPenalty
	}
	return 0
}
