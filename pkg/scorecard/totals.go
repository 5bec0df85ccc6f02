package scorecard

// RecomputeTotals recalculates front-nine, back-nine, and round totals
// for every player from the current scores. A segment total is only set
// when at least one hole in that segment has a score; holes without a
// score contribute nothing.
func (e *Extracted) RecomputeTotals() {
	for i := range e.Players {
		e.Players[i].recomputeTotals()
	}
}

func (p *PlayerInfo) recomputeTotals() {
	var front, back, total int
	var frontSet, backSet bool

	for _, s := range p.Scores {
		if s.Score == nil {
			continue
		}
		total += *s.Score
		if s.HoleNumber <= 9 {
			front += *s.Score
			frontSet = true
		} else {
			back += *s.Score
			backSet = true
		}
	}

	p.FrontNine, p.BackNine, p.Total = nil, nil, nil
	if frontSet {
		p.FrontNine = IntPtr(front)
	}
	if backSet {
		p.BackNine = IntPtr(back)
	}
	if frontSet || backSet {
		p.Total = IntPtr(total)
	}
}

// ScoredHoles returns how many of the player's cells hold a score.
func (p *PlayerInfo) ScoredHoles() int {
	n := 0
	for _, s := range p.Scores {
		if s.Score != nil {
			n++
		}
	}
	return n
}

// SetScore fills the cell for holeNumber if and only if it is currently
// empty, tagging provenance and grading confidence against par. It
// reports whether the cell was filled. Non-nil scores are never
// overwritten here; that is reserved for explicit manual edits.
func (p *PlayerInfo) SetScore(holeNumber, score, par int, source Source) bool {
	for i := range p.Scores {
		if p.Scores[i].HoleNumber != holeNumber {
			continue
		}
		if p.Scores[i].Score != nil {
			return false
		}
		p.Scores[i].Score = IntPtr(score)
		p.Scores[i].Source = source
		p.Scores[i].Confidence = GradeConfidence(score, par)
		p.recomputeTotals()
		return true
	}
	return false
}
