// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table renders rows of data as aligned text, CSV or an XLSX
// spreadsheet.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/xuri/excelize/v2"
)

// Row interface that a table row representation must implement.
type Row interface {
	CSV() []string // an encoding/csv compatible row representation
}

// CellsRow is optionally implemented by rows which carry typed values, such as
// numbers. WriteXLSX uses it to store numeric cells as numbers rather than
// text. A nil element is an empty cell.
type CellsRow interface {
	Row
	Cells() []any
}

// Strings is the simplest Row made of plain strings.
type Strings []string

var _ Row = Strings{}

func (s Strings) CSV() []string { return s }

// Table container.
//
// A typical use:
//	t := NewTable("Name", "Description")
//	t.AddRow(Strings{"NIPA", "Standard NIPA tables"})
//	err := t.WriteText(os.Stdout, Params{LeftAlign: 2})
type Table struct {
	Header []string // optional, may be nil
	Rows   []Row
}

// NewTable creates a new Table instance with optional column headers. When
// present, the number of column headers is expected to match the number of
// elements in each Row.
func NewTable(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow adds one or more rows to the table.
func (t *Table) AddRow(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Params are parameters for pretty-printing or exporting Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
	LeftAlign   int  // for WriteText only; number of leading left-aligned columns
}

// rows returns the rows to write according to the Rows limit.
func (t *Table) rows(p Params) []Row {
	if p.Rows > 0 && p.Rows < len(t.Rows) {
		return t.Rows[:p.Rows]
	}
	return t.Rows
}

func (t *Table) hasHeader(p Params) bool {
	return !p.NoHeader && len(t.Header) > 0
}

// WriteCSV writes the table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if t.hasHeader(p) {
		if err := cw.Write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for _, r := range t.rows(p) {
		if err := cw.Write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// columnWidths computes the display width of each column in runes, capped by
// maxWidth when it is positive.
func columnWidths(lines [][]string, maxWidth int) ([]int, error) {
	var widths []int
	for i, line := range lines {
		if len(line) == 0 {
			return nil, errors.Reason("row %d is empty", i)
		}
		if widths == nil {
			widths = make([]int, len(line))
		}
		if len(line) != len(widths) {
			return nil, errors.Reason("row %d size [%d] != expected size [%d]",
				i, len(line), len(widths))
		}
		for j, s := range line {
			n := len([]rune(s))
			if maxWidth > 0 && n > maxWidth {
				n = maxWidth
			}
			if n > widths[j] {
				widths[j] = n
			}
		}
	}
	return widths, nil
}

// fit truncates s to width runes, marking the cut with "..", and pads it on
// the left or right.
func fit(s string, width int, left bool) string {
	if r := []rune(s); len(r) > width {
		s = string(r[:width-2]) + ".."
	}
	if left {
		return fmt.Sprintf("%-[2]*[1]s", s, width)
	}
	return fmt.Sprintf("%[2]*[1]s", s, width)
}

// WriteText writes the table as a text formatted for ease of reading. Columns
// are right-aligned except for the first p.LeftAlign columns.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	var lines [][]string
	if t.hasHeader(p) {
		lines = append(lines, t.Header)
	}
	for _, r := range t.rows(p) {
		lines = append(lines, r.CSV())
	}
	widths, err := columnWidths(lines, p.MaxColWidth)
	if err != nil {
		return errors.Annotate(err, "failed to compute column widths")
	}
	write := func(line []string) error {
		cells := make([]string, len(line))
		for i, s := range line {
			cells[i] = fit(s, widths[i], i < p.LeftAlign)
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.TrimRight(strings.Join(cells, " | "), " "))
		return err
	}
	for i, line := range lines {
		if err := write(line); err != nil {
			return errors.Annotate(err, "failed to write row %d", i)
		}
		if i == 0 && t.hasHeader(p) {
			dashes := make([]string, len(widths))
			for j, n := range widths {
				dashes[j] = strings.Repeat("-", n)
			}
			if err := write(dashes); err != nil {
				return errors.Annotate(err, "failed to write header separator")
			}
		}
	}
	return nil
}

// WriteXLSX writes the table as a single-sheet XLSX workbook to w. Rows
// implementing CellsRow keep their typed values.
func (t *Table) WriteXLSX(w io.Writer, sheet string, p Params) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Annotate(err, "failed to name sheet '%s'", sheet)
	}
	rowNum := 1
	setRow := func(values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		rowNum++
		return f.SetSheetRow(sheet, cell, &values)
	}
	if t.hasHeader(p) {
		header := make([]any, len(t.Header))
		for i, h := range t.Header {
			header[i] = h
		}
		if err := setRow(header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for i, r := range t.rows(p) {
		var values []any
		if cr, ok := r.(CellsRow); ok {
			values = cr.Cells()
		} else {
			for _, s := range r.CSV() {
				values = append(values, s)
			}
		}
		if err := setRow(values); err != nil {
			return errors.Annotate(err, "failed to write row %d", i)
		}
	}
	if err := f.Write(w); err != nil {
		return errors.Annotate(err, "failed to write workbook")
	}
	return nil
}
