// Package export renders a reconciled scorecard as a spreadsheet: XLSX
// for people, CSV for pipelines. The layout mirrors a physical card,
// holes across the top and one row per player.
package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

const sheetName = "Scorecard"

// XLSX renders the card as an XLSX workbook.
func XLSX(card *scorecard.Extracted) ([]byte, error) {
	if card == nil {
		return nil, errors.NewValidationError("scorecard", nil, "nil scorecard")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	for i, rec := range rows(card) {
		for j, v := range rec {
			if v == "" {
				continue
			}
			if err := write(j+1, i+1, cellValue(v)); err != nil {
				return nil, err
			}
		}
	}

	// Name column wide, score columns narrow like a printed card.
	last, err := excelize.ColumnNumberToName(1 + card.HoleCount() + 3)
	if err == nil {
		_ = f.SetColWidth(sheetName, "A", "A", 22)
		_ = f.SetColWidth(sheetName, "B", last, 6)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSV writes the card to w in the same row layout as the XLSX export.
func CSV(w io.Writer, card *scorecard.Extracted) error {
	if card == nil {
		return errors.NewValidationError("scorecard", nil, "nil scorecard")
	}
	cw := csv.NewWriter(w)
	for _, rec := range rows(card) {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the card to path, choosing the format from the file
// extension: .xlsx for a workbook, anything else for CSV.
func WriteFile(path string, card *scorecard.Extracted) error {
	var data []byte

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		b, err := XLSX(card)
		if err != nil {
			return err
		}
		data = b
	default:
		var buf bytes.Buffer
		if err := CSV(&buf, card); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// rows lays the card out as string records shared by both formats:
// optional course line, hole header, par row, then one row per player
// with front, back, and total columns.
func rows(card *scorecard.Extracted) [][]string {
	n := card.HoleCount()
	var out [][]string

	if card.CourseName != "" {
		out = append(out, pad([]string{"Course", card.CourseName}, n+4))
	}

	header := make([]string, 0, n+4)
	header = append(header, "Hole")
	for _, h := range card.Holes {
		header = append(header, strconv.Itoa(h.HoleNumber))
	}
	header = append(header, "Out", "In", "Total")
	out = append(out, header)

	par := make([]string, 0, n+4)
	par = append(par, "Par")
	parOut, parIn := 0, 0
	for _, h := range card.Holes {
		par = append(par, strconv.Itoa(h.Par))
		if h.HoleNumber <= 9 {
			parOut += h.Par
		} else {
			parIn += h.Par
		}
	}
	par = append(par, strconv.Itoa(parOut), formatInt(parIn), strconv.Itoa(parOut+parIn))
	out = append(out, par)

	for _, p := range card.Players {
		rec := make([]string, 0, n+4)
		rec = append(rec, p.Name)
		for _, s := range p.Scores {
			rec = append(rec, formatScore(s.Score))
		}
		rec = append(rec, formatScore(p.FrontNine), formatScore(p.BackNine), formatScore(p.Total))
		out = append(out, rec)
	}
	return out
}

func formatScore(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func cellValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

func pad(rec []string, width int) []string {
	for len(rec) < width {
		rec = append(rec, "")
	}
	return rec
}
