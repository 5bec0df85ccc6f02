package structure

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

// Search window sizes, in rows. Scorecards put the hole header near the
// top; the par row sits adjacent to it; the anchor fallback digs deeper
// because the top of the photo may be cropped.
const (
	holeRowSearchDepth = 6
	parRowSearchAfter  = 8
	anchorSearchDepth  = 15
	defaultPar         = 4
)

var scoreTokenPattern = regexp.MustCompile(`^(?:[+-]?\d{1,2}|[eE])$`)

// RawPlayer is one qualifying player row: a name and the raw text of
// each hole-column cell, aligned with Candidate.Holes. An empty token
// means the cell could not be read.
type RawPlayer struct {
	Name   string
	Tokens []string
}

// Candidate is the scorecard skeleton located in a grid. Score tokens
// are raw and unconverted; notation detection runs once over the whole
// collection afterwards.
type Candidate struct {
	Holes       []scorecard.HoleInfo
	HoleColumns []int
	Players     []RawPlayer

	// ParDetected is false when no par row was found and pars were
	// defaulted; validation treats such cards more skeptically.
	ParDetected bool
}

// AllTokens returns every non-empty raw score token on the card, the
// input to scorecard-wide notation detection.
func (c *Candidate) AllTokens() []string {
	var tokens []string
	for _, p := range c.Players {
		for _, tok := range p.Tokens {
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

// Extract locates the hole-number row, par row, and player rows in a
// recognized text grid. The layout analysis is advisory; extraction
// tolerates missing or shifted rows. It fails outright when no hole
// columns can be identified by either search method, or when no player
// rows qualify.
func Extract(grid *Grid, la *layout.Analysis) (*Candidate, error) {
	if grid == nil || grid.RowCount() == 0 {
		return nil, errors.NewStructureError("grid", "empty recognition grid", errors.ErrNoHoleRow)
	}
	la = la.OrDefault()

	cand := &Candidate{}
	parRow := -1

	holeRow, holes, cols := findHoleRow(grid)
	if holeRow >= 0 {
		cand.Holes = holes
		cand.HoleColumns = cols
		parRow = findParRow(grid, holeRow, cols)
	} else {
		// Top of the image may be cropped or obstructed: fall back to
		// anchoring on the par row itself.
		parRow, holes, cols = findParAnchor(grid)
		if parRow < 0 {
			return nil, errors.NewStructureError("hole-row",
				"no sequential hole-number series and no par anchor found",
				errors.ErrNoHoleRow)
		}
		cand.Holes = holes
		cand.HoleColumns = cols
	}

	if parRow >= 0 {
		cand.ParDetected = true
		for i, col := range cand.HoleColumns {
			if v, err := strconv.Atoi(grid.Cell(parRow, col)); err == nil {
				cand.Holes[i].Par = v
			}
		}
	}
	for i := range cand.Holes {
		if cand.Holes[i].Par == 0 {
			cand.Holes[i].Par = defaultPar
		}
	}

	cand.Players = findPlayerRows(grid, holeRow, parRow, cand.HoleColumns)
	if len(cand.Players) == 0 {
		return nil, errors.NewStructureError("player-rows",
			"no rows qualified as player rows", errors.ErrNoPlayerRows)
	}

	return cand, nil
}

// findHoleRow scans the top of the grid for a row containing a strictly
// sequential 1..N series of 8-9 or 17-18 cells. Columns whose text is a
// summary label or presumed player initials are excluded before
// sequence-testing. Returns (-1, nil, nil) when no row qualifies.
func findHoleRow(grid *Grid) (int, []scorecard.HoleInfo, []int) {
	depth := min(holeRowSearchDepth, grid.RowCount())
	for row := 0; row < depth; row++ {
		holes, cols := sequentialSeries(grid, row)
		if holes != nil {
			return row, holes, cols
		}
	}
	return -1, nil, nil
}

func sequentialSeries(grid *Grid, row int) ([]scorecard.HoleInfo, []int) {
	if row >= grid.RowCount() {
		return nil, nil
	}

	type numbered struct {
		col int
		val int
	}
	var cells []numbered
	for col := range grid.Rows[row] {
		text := grid.Cell(row, col)
		if text == "" || isNonHoleLabel(text) {
			continue
		}
		if v, err := strconv.Atoi(text); err == nil {
			cells = append(cells, numbered{col: col, val: v})
		}
	}

	// Take the run starting at 1 and incrementing strictly by one.
	start := -1
	for i, c := range cells {
		if c.val == 1 {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil
	}

	var holes []scorecard.HoleInfo
	var cols []int
	next := 1
	for _, c := range cells[start:] {
		if c.val != next {
			break
		}
		holes = append(holes, scorecard.HoleInfo{HoleNumber: c.val})
		cols = append(cols, c.col)
		next++
	}

	if !plausibleHoleCount(len(holes)) {
		return nil, nil
	}
	return holes, cols
}

// plausibleHoleCount accepts 8-9 or 17-18 columns; one hole at either
// boundary may be obscured in the photo.
func plausibleHoleCount(n int) bool {
	return (n >= 8 && n <= 9) || (n >= 17 && n <= 18)
}

// findParRow looks for the par row around a located hole row: the row
// immediately before it first, then up to parRowSearchAfter rows below.
func findParRow(grid *Grid, holeRow int, holeCols []int) int {
	if holeRow > 0 && isParLabel(grid.Label(holeRow-1, holeCols)) {
		return holeRow - 1
	}
	limit := min(holeRow+parRowSearchAfter, grid.RowCount()-1)
	for row := holeRow + 1; row <= limit; row++ {
		if isParLabel(grid.Label(row, holeCols)) {
			return row
		}
	}
	return -1
}

// findParAnchor searches deeper for a row labeled "par" whose cells hold
// a plausible par series. Its columns become the hole columns, numbered
// 1..N in order, and the row doubles as the par row.
func findParAnchor(grid *Grid) (int, []scorecard.HoleInfo, []int) {
	depth := min(anchorSearchDepth, grid.RowCount())
	for row := 0; row < depth; row++ {
		if !isParLabel(grid.Label(row, nil)) {
			continue
		}

		var holes []scorecard.HoleInfo
		var cols []int
		for col := range grid.Rows[row] {
			v, err := strconv.Atoi(grid.Cell(row, col))
			if err != nil || v < 3 || v > 5 {
				continue
			}
			holes = append(holes, scorecard.HoleInfo{
				HoleNumber: len(holes) + 1,
				Par:        v,
			})
			cols = append(cols, col)
		}

		if plausibleHoleCount(len(holes)) {
			return row, holes, cols
		}
	}
	return -1, nil, nil
}

// findPlayerRows collects every row that qualifies as a player: its
// label is not course metadata, at least one hole-column cell parses as
// a score token, and not every numeric value exceeds 18 (which would be
// yardage data misidentified as scores).
func findPlayerRows(grid *Grid, holeRow, parRow int, holeCols []int) []RawPlayer {
	var players []RawPlayer
	for row := 0; row < grid.RowCount(); row++ {
		if row == holeRow || row == parRow {
			continue
		}

		name := grid.Label(row, holeCols)
		if name == "" || IsMetadataLabel(name) {
			continue
		}

		tokens := make([]string, len(holeCols))
		valid := 0
		numeric := 0
		over18 := 0
		for i, col := range holeCols {
			text := grid.Cell(row, col)
			if !scoreTokenPattern.MatchString(text) {
				continue
			}
			tokens[i] = text
			valid++
			if v, err := strconv.Atoi(strings.TrimPrefix(text, "+")); err == nil {
				numeric++
				if v > 18 {
					over18++
				}
			}
		}

		if valid == 0 {
			continue
		}
		if numeric > 0 && over18 == numeric {
			continue
		}

		players = append(players, RawPlayer{Name: name, Tokens: tokens})
	}
	return players
}
