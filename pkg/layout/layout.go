// Package layout describes the coarse classification of a scorecard
// photo. The analysis is advisory only: it parameterizes the extraction
// prompts and validation thresholds, and a failed or uncertain probe
// degrades to safe defaults instead of failing the pipeline.
package layout

// Type is the overall card layout family.
type Type string

const (
	// TypeStandard is a conventional grid with a hole row across the top.
	TypeStandard Type = "standard"
	// TypeContinuous lays both nines side by side in one long row.
	TypeContinuous Type = "continuous"
	// TypeUnknown means the probe could not classify the card.
	TypeUnknown Type = "unknown"
)

// MinConfidence is the floor under which an analysis is discarded in
// favor of defaults.
const MinConfidence = 0.5

// Analysis is the ephemeral result of the layout probe. It steers
// extraction and is not persisted downstream.
type Analysis struct {
	HoleCount         int     `json:"hole_count"`
	LayoutType        Type    `json:"layout_type"`
	HasSummaryColumns bool    `json:"has_summary_columns"`
	HasInitialColumns bool    `json:"has_initial_columns"`
	RowOriented       bool    `json:"row_oriented"`
	Confidence        float64 `json:"confidence"`
}

// Default returns the assumptions used when probing fails or reports
// low confidence: nine holes, row-oriented, no summary columns.
func Default() *Analysis {
	return &Analysis{
		HoleCount:   9,
		LayoutType:  TypeStandard,
		RowOriented: true,
		Confidence:  0,
	}
}

// Usable reports whether the analysis is trustworthy enough to steer
// extraction. Hole counts other than 9 or 18 are never trusted.
func (a *Analysis) Usable() bool {
	if a == nil {
		return false
	}
	if a.HoleCount != 9 && a.HoleCount != 18 {
		return false
	}
	return a.Confidence >= MinConfidence
}

// OrDefault returns the analysis itself when usable, defaults otherwise.
func (a *Analysis) OrDefault() *Analysis {
	if a.Usable() {
		return a
	}
	return Default()
}
