package reconciler

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
	"github.com/fairwaylab/scorelens/pkg/structure"
)

type fakeStructure struct {
	grid *structure.Grid
	err  error
}

func (f *fakeStructure) ReadGrid(_ context.Context, _ Image) (*structure.Grid, error) {
	return f.grid, f.err
}

type fakeHandwriting struct {
	card *HandwritingCard
	err  error

	mu    sync.Mutex
	hints []*Hint
}

func (f *fakeHandwriting) ReadScores(_ context.Context, _ Image, hint *Hint) (*HandwritingCard, error) {
	f.mu.Lock()
	f.hints = append(f.hints, hint)
	f.mu.Unlock()
	return f.card, f.err
}

func (f *fakeHandwriting) hintWithPars() *Hint {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hints {
		if h != nil && len(h.Pars) > 0 {
			return h
		}
	}
	return nil
}

type fakeClassifier struct {
	analysis *layout.Analysis
	err      error
}

func (f *fakeClassifier) Classify(_ context.Context, _ Image) (*layout.Analysis, error) {
	return f.analysis, f.err
}

func testImage() Image {
	return Image{Data: []byte("not really a jpeg"), MIME: "image/jpeg"}
}

// relativeNineHoleGrid is a card written in relative notation: one
// player, explicit -1 marker, one unreadable cell on the last hole.
func relativeNineHoleGrid() *structure.Grid {
	return &structure.Grid{Rows: [][]string{
		{"HOLE", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		{"PAR", "5", "4", "4", "4", "5", "3", "4", "3", "4"},
		{"Sam", "1", "1", "1", "-1", "3", "0", "1", "1", ""},
	}}
}

func TestReconcileRelativeCardEndToEnd(t *testing.T) {
	r, err := New(
		WithStructureReader(&fakeStructure{grid: relativeNineHoleGrid()}),
	)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.NoError(t, err)
	require.NotNil(t, result.Scorecard)

	card := result.Scorecard
	assert.Equal(t, scorecard.NotationRelative, card.NotationStyle)
	assert.False(t, card.NotationFlagged)

	p := card.Player("Sam")
	require.NotNil(t, p)
	want := []*int{
		scorecard.IntPtr(6), scorecard.IntPtr(5), scorecard.IntPtr(5),
		scorecard.IntPtr(3), scorecard.IntPtr(8), scorecard.IntPtr(3),
		scorecard.IntPtr(5), scorecard.IntPtr(4), nil,
	}
	for i, w := range want {
		if w == nil {
			assert.Nil(t, p.Scores[i].Score, "hole %d", i+1)
			continue
		}
		require.NotNil(t, p.Scores[i].Score, "hole %d", i+1)
		assert.Equal(t, *w, *p.Scores[i].Score, "hole %d", i+1)
	}
}

func TestReconcileMergeFillsFromHandwriting(t *testing.T) {
	hw := &fakeHandwriting{card: &HandwritingCard{Players: map[string][]string{
		"Sam": {"", "", "", "", "", "", "", "", "2"},
	}}}
	r, err := New(
		WithStructureReader(&fakeStructure{grid: relativeNineHoleGrid()}),
		WithHandwritingReader(hw),
	)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.NoError(t, err)

	// The merged strategy fills hole 9 (par 4, token "2" relative -> 6)
	// and outranks the structure-only candidate on completeness.
	assert.Equal(t, "structure+handwriting", result.Winner.StrategyID)
	p := result.Scorecard.Player("Sam")
	require.NotNil(t, p.Scores[8].Score)
	assert.Equal(t, 6, *p.Scores[8].Score)
	assert.Equal(t, scorecard.SourceHandwriting, p.Scores[8].Source)
	assert.Equal(t, scorecard.SourceStructural, p.Scores[0].Source)

	// The merge pass hints the handwriting backend with the grid it found.
	hint := hw.hintWithPars()
	require.NotNil(t, hint)
	assert.Equal(t, 9, hint.HoleCount)
	assert.Equal(t, []int{5, 4, 4, 4, 5, 3, 4, 3, 4}, hint.Pars)
	assert.Equal(t, []string{"Sam"}, hint.Players)
}

func TestReconcileAllStrategiesFail(t *testing.T) {
	r, err := New(
		WithStructureReader(&fakeStructure{err: errors.ErrBackendUnavailable}),
		WithHandwritingReader(&fakeHandwriting{err: errors.ErrBackendUnavailable}),
	)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.Error(t, err)
	assert.Nil(t, result)

	assert.True(t, errors.IsExtractionFailed(err))
	assert.Contains(t, err.Error(), "no strategy returned a usable result")

	var pe *errors.PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, pe.Attempts, 3)
}

func TestReconcileSurvivesHandwritingFailure(t *testing.T) {
	r, err := New(
		WithStructureReader(&fakeStructure{grid: relativeNineHoleGrid()}),
		WithHandwritingReader(&fakeHandwriting{err: errors.ErrBackendUnavailable}),
	)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.NoError(t, err)
	require.NotNil(t, result.Scorecard)

	// handwriting-only failed; structure-only and the degraded merge both
	// produced the same card.
	assert.Len(t, result.Failures, 1)
	assert.Len(t, result.Candidates, 2)
}

func TestReconcileLayoutProbeFailsSoft(t *testing.T) {
	r, err := New(
		WithStructureReader(&fakeStructure{grid: relativeNineHoleGrid()}),
		WithLayoutClassifier(&fakeClassifier{err: errors.ErrBackendUnavailable}),
	)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, 9, result.Metadata.Layout.HoleCount)
}

func TestReconcileDiscardsLowConfidenceLayout(t *testing.T) {
	r, err := New(
		WithStructureReader(&fakeStructure{grid: relativeNineHoleGrid()}),
		WithLayoutClassifier(&fakeClassifier{analysis: &layout.Analysis{
			HoleCount:  18,
			Confidence: 0.2,
		}}),
	)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.NoError(t, err)
	// The probe claimed 18 holes but under the confidence floor the run
	// falls back to 9, so the 9-hole card validates cleanly.
	assert.Equal(t, 9, result.Metadata.Layout.HoleCount)
	assert.Equal(t, 100, result.Winner.ValidationScore)
}

type stubStrategy struct {
	id   string
	base float64
	card *scorecard.Extracted
	err  error
}

func (s *stubStrategy) ID() string              { return s.id }
func (s *stubStrategy) BaseConfidence() float64 { return s.base }
func (s *stubStrategy) Extract(_ context.Context, _ Image, _ *layout.Analysis) (*scorecard.Extracted, error) {
	return s.card, s.err
}

func TestReconcileTieBrokenByBaseConfidence(t *testing.T) {
	a := cleanCard()
	b := cleanCard()

	r, err := New(WithStrategies(
		&stubStrategy{id: "low-prior", base: 0.5, card: a},
		&stubStrategy{id: "high-prior", base: 0.9, card: b},
	))
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "high-prior", result.Winner.StrategyID)
}

func TestReconcileHigherScoreBeatsHigherPrior(t *testing.T) {
	good := cleanCard()
	bad := cleanCard()
	bad.Holes[0].Par = 2
	bad.Holes[1].Par = 6 // sanitizer drops both holes, costing the score

	r, err := New(WithStrategies(
		&stubStrategy{id: "accurate", base: 0.5, card: good},
		&stubStrategy{id: "confident", base: 0.9, card: bad},
	))
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "accurate", result.Winner.StrategyID)
}

func TestNewRequiresStrategies(t *testing.T) {
	_, err := New()
	require.Error(t, err)

	_, err = New(WithStrategies())
	require.Error(t, err)
}
