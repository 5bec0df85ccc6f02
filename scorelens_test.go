package scorelens

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/reconciler"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

type stubStrategy struct{ card *scorecard.Extracted }

func (s *stubStrategy) ID() string              { return "stub" }
func (s *stubStrategy) BaseConfidence() float64 { return 0.9 }
func (s *stubStrategy) Extract(_ context.Context, _ reconciler.Image, _ *layout.Analysis) (*scorecard.Extracted, error) {
	return s.card, nil
}

func stubCard() *scorecard.Extracted {
	card := &scorecard.Extracted{NotationStyle: scorecard.NotationGross}
	for i := 1; i <= 9; i++ {
		card.Holes = append(card.Holes, scorecard.HoleInfo{HoleNumber: i, Par: 4})
	}
	p := scorecard.PlayerInfo{Name: "Sam"}
	for i := 1; i <= 9; i++ {
		p.Scores = append(p.Scores, scorecard.PlayerHoleScore{
			HoleNumber: i,
			Score:      scorecard.IntPtr(5),
			Source:     scorecard.SourceStructural,
		})
	}
	card.Players = append(card.Players, p)
	card.RecomputeTotals()
	return card
}

func stubLens(t *testing.T) Scorelens {
	t.Helper()
	lens, err := New(WithReconcilerOptions(
		reconciler.WithStrategies(&stubStrategy{card: stubCard()}),
	))
	require.NoError(t, err)
	return lens
}

func TestScan(t *testing.T) {
	lens := stubLens(t)
	defer lens.Close()

	result, err := lens.Scan(context.Background(), reconciler.Image{Data: []byte("img"), MIME: "image/jpeg"})
	require.NoError(t, err)
	require.NotNil(t, result.Scorecard)
	assert.Equal(t, "stub", result.Winner.StrategyID)
	assert.Equal(t, 45, *result.Scorecard.Players[0].Total)
}

func TestScanRejectsEmptyImage(t *testing.T) {
	lens := stubLens(t)
	defer lens.Close()

	_, err := lens.Scan(context.Background(), reconciler.Image{})
	require.Error(t, err)
}

func TestScanFile(t *testing.T) {
	lens := stubLens(t)
	defer lens.Close()

	path := filepath.Join(t.TempDir(), "card.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not really a jpeg"), 0o644))

	result, err := lens.ScanFile(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, result.Scorecard)

	_, err = lens.ScanFile(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestOnScanComplete(t *testing.T) {
	lens := stubLens(t)
	defer lens.Close()

	var seen []*reconciler.Result
	lens.OnScanComplete(func(result *reconciler.Result) {
		seen = append(seen, result)
	})

	_, err := lens.Scan(context.Background(), reconciler.Image{Data: []byte("img"), MIME: "image/jpeg"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.NotNil(t, seen[0].Scorecard)
}

func TestReadImageMIME(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		want string
	}{
		{"card.jpg", "image/jpeg"},
		{"card.png", "image/png"},
		{"card.webp", "image/webp"},
		{"card.bin", "application/octet-stream"},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		img, err := ReadImage(path)
		require.NoError(t, err)
		assert.Contains(t, img.MIME, tt.want, "file %s", tt.name)
	}
}
