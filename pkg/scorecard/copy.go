package scorecard

// Copy returns a deep copy of the scorecard. Concurrent extraction
// strategies each operate on their own copy; nothing is shared.
func (e *Extracted) Copy() *Extracted {
	if e == nil {
		return nil
	}

	dup := &Extracted{
		CourseName:      e.CourseName,
		TeeName:         e.TeeName,
		Date:            e.Date,
		NotationStyle:   e.NotationStyle,
		NotationFlagged: e.NotationFlagged,
	}

	if e.Holes != nil {
		dup.Holes = make([]HoleInfo, len(e.Holes))
		for i, h := range e.Holes {
			dup.Holes[i] = HoleInfo{
				HoleNumber: h.HoleNumber,
				Par:        h.Par,
				Yardage:    copyIntPtr(h.Yardage),
				Handicap:   copyIntPtr(h.Handicap),
			}
		}
	}

	if e.Players != nil {
		dup.Players = make([]PlayerInfo, len(e.Players))
		for i, p := range e.Players {
			dup.Players[i] = *p.copy()
		}
	}

	return dup
}

func (p *PlayerInfo) copy() *PlayerInfo {
	dup := &PlayerInfo{
		Name:      p.Name,
		FrontNine: copyIntPtr(p.FrontNine),
		BackNine:  copyIntPtr(p.BackNine),
		Total:     copyIntPtr(p.Total),
	}
	if p.Scores != nil {
		dup.Scores = make([]PlayerHoleScore, len(p.Scores))
		for i, s := range p.Scores {
			dup.Scores[i] = PlayerHoleScore{
				HoleNumber: s.HoleNumber,
				Score:      copyIntPtr(s.Score),
				Confidence: s.Confidence,
				Source:     s.Source,
			}
		}
	}
	return dup
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
