// Package scorecard defines the data model for an extracted golf round:
// holes, par values, players, and per-hole stroke counts together with the
// provenance and confidence metadata attached by the extraction pipeline.
package scorecard

// NotationStyle describes how raw score tokens on a card are written.
// The style is decided exactly once per scorecard and applied to every
// cell; mixed per-player or per-cell styles are not representable.
type NotationStyle string

const (
	// NotationGross means tokens are absolute stroke counts.
	NotationGross NotationStyle = "gross"
	// NotationRelative means tokens are signed offsets from par.
	NotationRelative NotationStyle = "relative"
)

// Confidence grades how much a single extracted score is trusted.
type Confidence string

const (
	// ConfidenceHigh marks a score within 3 strokes of par.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium marks a score within 5 strokes of par.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow marks a plausible but unusual score.
	ConfidenceLow Confidence = "low"
)

// Source identifies which extraction pass produced a score.
type Source string

const (
	// SourceStructural marks scores read by the document-structure pass.
	SourceStructural Source = "structural"
	// SourceHandwriting marks scores filled in by the handwriting re-read.
	SourceHandwriting Source = "handwriting"
	// SourceManual marks scores edited by a user downstream.
	SourceManual Source = "manual"
)

// HoleInfo describes a single hole on the card.
type HoleInfo struct {
	HoleNumber int  `json:"hole_number" yaml:"hole_number"`         // 1..18, unique within a card
	Par        int  `json:"par" yaml:"par"`                         // 3..5 after cleanup
	Yardage    *int `json:"yardage,omitempty" yaml:"yardage,omitempty"`   // Optional distance
	Handicap   *int `json:"handicap,omitempty" yaml:"handicap,omitempty"` // Optional stroke index
}

// PlayerHoleScore is one cell of the card for one player. Score is gross
// strokes once past notation normalization; nil means the cell could not
// be read. A nil score may be filled exactly once by the gap-filling
// merger and is never overwritten afterwards except by manual edit.
type PlayerHoleScore struct {
	HoleNumber int        `json:"hole_number" yaml:"hole_number"`
	Score      *int       `json:"score" yaml:"score"`
	Confidence Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Source     Source     `json:"source,omitempty" yaml:"source,omitempty"`
}

// PlayerInfo is one player row: a name and the player's per-hole scores.
// Totals are derived and recomputed whenever a score changes.
type PlayerInfo struct {
	Name      string            `json:"name" yaml:"name"`
	Scores    []PlayerHoleScore `json:"scores" yaml:"scores"`
	FrontNine *int              `json:"front_nine,omitempty" yaml:"front_nine,omitempty"`
	BackNine  *int              `json:"back_nine,omitempty" yaml:"back_nine,omitempty"`
	Total     *int              `json:"total,omitempty" yaml:"total,omitempty"`
}

// Extracted is a fully reconciled scorecard, the single artifact the
// pipeline produces.
type Extracted struct {
	CourseName string        `json:"course_name,omitempty" yaml:"course_name,omitempty"`
	TeeName    string        `json:"tee_name,omitempty" yaml:"tee_name,omitempty"`
	Date       string        `json:"date,omitempty" yaml:"date,omitempty"`
	Holes      []HoleInfo    `json:"holes" yaml:"holes"`
	Players    []PlayerInfo  `json:"players" yaml:"players"`

	// NotationStyle is resolved once for the whole card and threaded
	// read-only through every downstream stage.
	NotationStyle NotationStyle `json:"notation_style,omitempty" yaml:"notation_style,omitempty"`

	// NotationFlagged is set when the statistical heuristic (rather than
	// explicit +N/-N/E syntax) decided the style, so downstream surfaces
	// can ask a human to confirm.
	NotationFlagged bool `json:"notation_flagged,omitempty" yaml:"notation_flagged,omitempty"`
}

// ParForHole returns the par for a hole number, or 0 if the hole is
// not on the card.
func (e *Extracted) ParForHole(holeNumber int) int {
	for _, h := range e.Holes {
		if h.HoleNumber == holeNumber {
			return h.Par
		}
	}
	return 0
}

// Player returns the player with the given name, or nil.
func (e *Extracted) Player(name string) *PlayerInfo {
	for i := range e.Players {
		if e.Players[i].Name == name {
			return &e.Players[i]
		}
	}
	return nil
}

// HoleCount returns the number of holes on the card.
func (e *Extracted) HoleCount() int {
	return len(e.Holes)
}

// GradeConfidence grades a score against par: high within 3 strokes,
// medium within 5, low otherwise.
func GradeConfidence(score, par int) Confidence {
	diff := score - par
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 3:
		return ConfidenceHigh
	case diff <= 5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// IntPtr returns a pointer to v. Convenience for building score cells.
func IntPtr(v int) *int {
	return &v
}
