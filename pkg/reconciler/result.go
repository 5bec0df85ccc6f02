package reconciler

import (
	"fmt"
	"time"

	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

// StrategyResult is one strategy's candidate scorecard together with
// the scores used to rank it. Candidates are ephemeral; only the
// winning scorecard leaves the pipeline.
type StrategyResult struct {
	Scorecard       *scorecard.Extracted
	StrategyID      string
	BaseConfidence  float64
	ValidationScore int
}

// Result is the outcome of one reconciliation run.
type Result struct {
	// Scorecard is the winning candidate, sanitized and validated.
	Scorecard *scorecard.Extracted

	// Winner identifies the selected strategy.
	Winner StrategyResult

	// Candidates holds every strategy result that survived, ranked
	// best-first. Useful for debugging extraction quality.
	Candidates []StrategyResult

	// Failures records the strategies that were excluded and why.
	Failures []error

	// Metadata about the run.
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// RequestID traces this run through the logs.
	RequestID string

	// StartTime when reconciliation started.
	StartTime time.Time

	// EndTime when reconciliation completed.
	EndTime time.Time

	// Duration of the reconciliation.
	Duration time.Duration

	// Layout is the advisory probe result that steered extraction.
	Layout *layout.Analysis

	// StrategiesRun lists every strategy that was launched.
	StrategiesRun []string
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("strategy %s won with validation score %d (%d candidates, %d failures)",
		r.Winner.StrategyID, r.Winner.ValidationScore, len(r.Candidates), len(r.Failures))
}

// NewResult creates a new result with defaults.
func NewResult(requestID string) *Result {
	return &Result{
		Metadata: ResultMetadata{
			RequestID: requestID,
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}
