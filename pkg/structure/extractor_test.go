package structure

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/scorelens/pkg/errors"
)

// nineHoleGrid builds a conventional scorecard grid: hole header, par
// row, yardage row, and two player rows with an Out summary column.
func nineHoleGrid() *Grid {
	return &Grid{Rows: [][]string{
		{"HOLE", "1", "2", "3", "4", "5", "6", "7", "8", "9", "OUT"},
		{"Blue", "520", "410", "385", "400", "510", "175", "420", "150", "390", "3360"},
		{"PAR", "5", "4", "4", "4", "5", "3", "4", "3", "4", "36"},
		{"Sam", "6", "5", "4", "5", "7", "3", "5", "4", "5", "44"},
		{"Alex", "5", "", "4", "4", "6", "4", "4", "3", "", ""},
		{"HANDICAP", "3", "9", "13", "7", "1", "17", "5", "15", "11", ""},
	}}
}

func TestExtractStandardGrid(t *testing.T) {
	cand, err := Extract(nineHoleGrid(), nil)
	require.NoError(t, err)

	require.Len(t, cand.Holes, 9)
	assert.True(t, cand.ParDetected)
	assert.Equal(t, 1, cand.Holes[0].HoleNumber)
	assert.Equal(t, 9, cand.Holes[8].HoleNumber)
	assert.Equal(t, []int{5, 4, 4, 4, 5, 3, 4, 3, 4}, pars(cand))

	require.Len(t, cand.Players, 2)
	assert.Equal(t, "Sam", cand.Players[0].Name)
	assert.Equal(t, "6", cand.Players[0].Tokens[0])
	assert.Equal(t, "5", cand.Players[0].Tokens[8])

	// Alex has two unreadable cells.
	assert.Equal(t, "", cand.Players[1].Tokens[1])
	assert.Equal(t, "", cand.Players[1].Tokens[8])
}

func TestExtractExcludesSummaryColumns(t *testing.T) {
	cand, err := Extract(nineHoleGrid(), nil)
	require.NoError(t, err)

	// The OUT column (index 10) must not be a hole column.
	for _, col := range cand.HoleColumns {
		assert.NotEqual(t, 10, col)
	}
}

func TestExtractSkipsMetadataRows(t *testing.T) {
	cand, err := Extract(nineHoleGrid(), nil)
	require.NoError(t, err)

	for _, p := range cand.Players {
		assert.NotContains(t, []string{"HANDICAP", "Blue", "PAR"}, p.Name)
	}
}

func TestExtractRejectsYardageAsPlayer(t *testing.T) {
	// A row of two-digit values all above 18 is yardage data from a
	// par-3 course, not a player.
	grid := &Grid{Rows: [][]string{
		{"HOLE", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		{"PAR", "3", "3", "3", "3", "3", "3", "3", "3", "3"},
		{"Dist", "85", "95", "80", "90", "88", "92", "86", "94", "90"},
		{"Jo", "3", "4", "3", "2", "3", "4", "3", "3", "4"},
	}}
	cand, err := Extract(grid, nil)
	require.NoError(t, err)
	require.Len(t, cand.Players, 1)
	assert.Equal(t, "Jo", cand.Players[0].Name)
}

func TestExtractParRowBeforeHoleRow(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{"PAR", "4", "4", "3", "5", "4", "4", "3", "5", "4"},
		{"HOLE", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		{"Kim", "5", "4", "3", "6", "4", "5", "3", "5", "4"},
	}}
	cand, err := Extract(grid, nil)
	require.NoError(t, err)
	assert.True(t, cand.ParDetected)
	assert.Equal(t, []int{4, 4, 3, 5, 4, 4, 3, 5, 4}, pars(cand))
}

func TestExtractParAnchorFallback(t *testing.T) {
	// Hole header cropped out of the photo: the par row anchors the
	// hole columns instead.
	grid := &Grid{Rows: [][]string{
		{"Pine Valley Golf Club", "", "", "", "", "", "", "", "", ""},
		{"MENS PAR", "4", "5", "3", "4", "4", "5", "3", "4", "4"},
		{"Pat", "5", "6", "3", "5", "4", "6", "4", "5", "5"},
	}}
	cand, err := Extract(grid, nil)
	require.NoError(t, err)

	require.Len(t, cand.Holes, 9)
	assert.True(t, cand.ParDetected)
	assert.Equal(t, 1, cand.Holes[0].HoleNumber)
	assert.Equal(t, []int{4, 5, 3, 4, 4, 5, 3, 4, 4}, pars(cand))
	require.Len(t, cand.Players, 1)
	assert.Equal(t, "Pat", cand.Players[0].Name)
}

func TestExtractEighteenHoles(t *testing.T) {
	header := []string{"HOLE"}
	par := []string{"PAR"}
	row := []string{"Lee"}
	for i := 1; i <= 9; i++ {
		header = append(header, strconv.Itoa(i))
		par = append(par, "4")
		row = append(row, "5")
	}
	header = append(header, "OUT")
	par = append(par, "36")
	row = append(row, "45")
	for i := 10; i <= 18; i++ {
		header = append(header, strconv.Itoa(i))
		par = append(par, "4")
		row = append(row, "4")
	}
	header = append(header, "IN", "TOTAL")
	par = append(par, "36", "72")
	row = append(row, "36", "81")

	cand, err := Extract(&Grid{Rows: [][]string{header, par, row}}, nil)
	require.NoError(t, err)
	require.Len(t, cand.Holes, 18)
	assert.Equal(t, 18, cand.Holes[17].HoleNumber)
	require.Len(t, cand.Players, 1)
	assert.Len(t, cand.Players[0].Tokens, 18)
}

func TestExtractMissingParDefaultsToFour(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{"HOLE", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		{"Ana", "5", "4", "4", "6", "5", "3", "4", "5", "4"},
	}}
	cand, err := Extract(grid, nil)
	require.NoError(t, err)
	assert.False(t, cand.ParDetected)
	for _, h := range cand.Holes {
		assert.Equal(t, 4, h.Par)
	}
}

func TestExtractNoHoleRow(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{"Just", "some", "text"},
		{"with", "no", "scorecard"},
	}}
	_, err := Extract(grid, nil)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))
}

func TestExtractNoPlayerRows(t *testing.T) {
	grid := &Grid{Rows: [][]string{
		{"HOLE", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		{"PAR", "4", "4", "3", "5", "4", "4", "3", "5", "4"},
		{"HANDICAP", "3", "9", "13", "7", "1", "17", "5", "15", "11"},
	}}
	_, err := Extract(grid, nil)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))
}

func TestExtractEmptyGrid(t *testing.T) {
	_, err := Extract(&Grid{}, nil)
	require.Error(t, err)
	_, err = Extract(nil, nil)
	require.Error(t, err)
}

func TestAllTokens(t *testing.T) {
	cand, err := Extract(nineHoleGrid(), nil)
	require.NoError(t, err)

	tokens := cand.AllTokens()
	// Sam has 9 readable cells, Alex has 7.
	assert.Len(t, tokens, 16)
	for _, tok := range tokens {
		assert.NotEmpty(t, tok)
	}
}

func TestIsMetadataLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"HANDICAP", true},
		{"Hdcp", true},
		{"PAR", true},
		{"Pace of Play", true},
		{"Blue 71.2/129", true},
		{"Men's Par", true},
		{"Ladies", true},
		{"Yardage", true},
		{"Sam", false},
		{"Alexandra", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMetadataLabel(tt.label), "label %q", tt.label)
	}
}

func pars(c *Candidate) []int {
	out := make([]int, len(c.Holes))
	for i, h := range c.Holes {
		out[i] = h.Par
	}
	return out
}

