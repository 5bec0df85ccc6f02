// Package structure turns a document-analysis text grid into a candidate
// scorecard skeleton: hole columns, a par row, and player rows with raw,
// unconverted score tokens. Extraction is a pure function of the grid and
// is testable against synthetic grids without any recognition backend.
package structure

import "strings"

// Grid is a 2-D table of recognized text cells as returned by the
// document-structure collaborator. Rows may be ragged; missing cells
// read as empty strings.
type Grid struct {
	Rows [][]string `json:"rows"`
}

// Cell returns the trimmed text at (row, col), or "" when out of range.
func (g *Grid) Cell(row, col int) string {
	if g == nil || row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.Rows)
}

// Label returns the row's leading text: the concatenation of non-empty
// cells before the first hole column (or the first cell when no hole
// columns are known yet). Scorecards put player names and row headers
// ("PAR", "HANDICAP") there.
func (g *Grid) Label(row int, holeCols []int) string {
	if g == nil || row < 0 || row >= len(g.Rows) {
		return ""
	}
	limit := len(g.Rows[row])
	if len(holeCols) > 0 && holeCols[0] < limit {
		limit = holeCols[0]
	}
	var parts []string
	for col := 0; col < limit; col++ {
		if text := g.Cell(row, col); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
