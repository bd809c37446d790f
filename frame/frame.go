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

// Package frame implements a two-dimensional table of numbers indexed by
// calendar dates (rows) and series labels (columns). Any cell may be missing,
// which is distinct from a zero value.
package frame

import (
	"math"
	"strconv"

	"github.com/stockparfait/bea/table"
	"github.com/stockparfait/errors"
)

// Frame of numeric values. Missing cells are stored as NaN internally and are
// never reported as numbers by the accessors.
type Frame struct {
	dates    []Date
	columns  []string
	data     [][]float64 // data[row][column]
	rowIndex map[Date]int
	colIndex map[string]int
}

// New creates a Frame with the given axes and every cell missing. The axes
// must not contain duplicates.
func New(dates []Date, columns []string) (*Frame, error) {
	f := &Frame{
		dates:    dates,
		columns:  columns,
		data:     make([][]float64, len(dates)),
		rowIndex: make(map[Date]int, len(dates)),
		colIndex: make(map[string]int, len(columns)),
	}
	for i, d := range dates {
		if _, ok := f.rowIndex[d]; ok {
			return nil, errors.Reason("duplicate date %s", d)
		}
		f.rowIndex[d] = i
	}
	for j, c := range columns {
		if _, ok := f.colIndex[c]; ok {
			return nil, errors.Reason("duplicate column '%s'", c)
		}
		f.colIndex[c] = j
	}
	for i := range f.data {
		row := make([]float64, len(columns))
		for j := range row {
			row[j] = math.NaN()
		}
		f.data[i] = row
	}
	return f, nil
}

// Dates is the row axis. The slice must not be modified.
func (f *Frame) Dates() []Date { return f.dates }

// Columns is the column axis. The slice must not be modified.
func (f *Frame) Columns() []string { return f.columns }

func (f *Frame) NumRows() int    { return len(f.dates) }
func (f *Frame) NumColumns() int { return len(f.columns) }

// Set the cell at (date, column) to v. Setting NaN marks the cell missing. It
// is an error to address a cell outside of the axes.
func (f *Frame) Set(date Date, column string, v float64) error {
	i, ok := f.rowIndex[date]
	if !ok {
		return errors.Reason("no row for date %s", date)
	}
	j, ok := f.colIndex[column]
	if !ok {
		return errors.Reason("no column '%s'", column)
	}
	f.data[i][j] = v
	return nil
}

// Value of the cell at (date, column). The second value is false when the
// cell is missing or the address is not in the frame.
func (f *Frame) Value(date Date, column string) (float64, bool) {
	i, ok := f.rowIndex[date]
	if !ok {
		return 0, false
	}
	j, ok := f.colIndex[column]
	if !ok {
		return 0, false
	}
	return f.At(i, j)
}

// At returns the cell by its row and column indices, which must be in range.
func (f *Frame) At(i, j int) (float64, bool) {
	v := f.data[i][j]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Column returns a copy of the column's values in row order, with NaN for
// missing cells, or nil if there is no such column.
func (f *Frame) Column(name string) []float64 {
	j, ok := f.colIndex[name]
	if !ok {
		return nil
	}
	res := make([]float64, len(f.dates))
	for i := range f.data {
		res[i] = f.data[i][j]
	}
	return res
}

// Range returns the frame restricted to the rows with dates in the inclusive
// range. Zero bounds are ignored. Rows keep their order, and the values are
// shared with f.
func (f *Frame) Range(start, end Date) *Frame {
	res := &Frame{
		columns:  f.columns,
		rowIndex: make(map[Date]int),
		colIndex: f.colIndex,
	}
	for i, d := range f.dates {
		if !d.InRange(start, end) {
			continue
		}
		res.rowIndex[d] = len(res.dates)
		res.dates = append(res.dates, d)
		res.data = append(res.data, f.data[i])
	}
	return res
}

// Missing counts the missing cells.
func (f *Frame) Missing() int {
	n := 0
	for _, row := range f.data {
		for _, v := range row {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// frameRow is one row of the frame for table rendering.
type frameRow struct {
	date    Date
	values  []float64
	missing string
}

var _ table.CellsRow = frameRow{}

func (r frameRow) CSV() []string {
	res := make([]string, len(r.values)+1)
	res[0] = r.date.String()
	for i, v := range r.values {
		if math.IsNaN(v) {
			res[i+1] = r.missing
			continue
		}
		res[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return res
}

func (r frameRow) Cells() []any {
	res := make([]any, len(r.values)+1)
	res[0] = r.date.String()
	for i, v := range r.values {
		if !math.IsNaN(v) {
			res[i+1] = v
		}
	}
	return res
}

// Table converts the frame into a table.Table with the header "Date" followed
// by the column labels. Missing cells are printed as the missing string.
func (f *Frame) Table(missing string) *table.Table {
	t := table.NewTable(append([]string{"Date"}, f.columns...)...)
	for i, d := range f.dates {
		t.AddRow(frameRow{date: d, values: f.data[i], missing: missing})
	}
	return t
}
