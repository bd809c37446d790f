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

package stats

import (
	"fmt"
	"math"

	"github.com/stockparfait/bea/frame"
	"github.com/stockparfait/bea/table"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary statistics of a Timeseries. For an empty series all the values are
// NaN and the dates are zero.
type Summary struct {
	Name   string
	Count  int
	First  frame.Date
	Last   frame.Date
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary of the series under the given name. The standard deviation is the
// sample one, and it is 0 for a single point.
func (t *Timeseries) Summary(name string) Summary {
	s := Summary{
		Name:   name,
		Count:  t.Len(),
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if s.Count == 0 {
		return s
	}
	s.First = t.dates[0]
	s.Last = t.dates[s.Count-1]
	s.Mean, s.StdDev = stat.MeanStdDev(t.data, nil)
	if s.Count == 1 {
		s.StdDev = 0
	}
	s.Min = floats.Min(t.data)
	s.Max = floats.Max(t.data)
	return s
}

// SummarizeFrame computes the Summary of every column of the Frame, in the
// column order.
func SummarizeFrame(f *frame.Frame) ([]Summary, error) {
	res := make([]Summary, 0, f.NumColumns())
	for _, c := range f.Columns() {
		ts, err := NewTimeseriesFromFrame(f, c)
		if err != nil {
			return nil, err
		}
		res = append(res, ts.Summary(c))
	}
	return res, nil
}

// SummaryHeader is the header of the summary table.
var SummaryHeader = []string{
	"Series", "Count", "First", "Last", "Mean", "StdDev", "Min", "Max"}

func formatFloat(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return fmt.Sprintf("%.6g", x)
}

func formatDate(d frame.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

var _ table.CellsRow = Summary{}

// CSV implements table.Row.
func (s Summary) CSV() []string {
	return []string{
		s.Name,
		fmt.Sprintf("%d", s.Count),
		formatDate(s.First),
		formatDate(s.Last),
		formatFloat(s.Mean),
		formatFloat(s.StdDev),
		formatFloat(s.Min),
		formatFloat(s.Max),
	}
}

// Cells implements table.CellsRow. Undefined values are empty cells.
func (s Summary) Cells() []any {
	num := func(x float64) any {
		if math.IsNaN(x) {
			return nil
		}
		return x
	}
	return []any{
		s.Name,
		s.Count,
		formatDate(s.First),
		formatDate(s.Last),
		num(s.Mean),
		num(s.StdDev),
		num(s.Min),
		num(s.Max),
	}
}

// SummaryTable creates a table of summaries suitable for text, CSV or XLSX
// output.
func SummaryTable(summaries []Summary) *table.Table {
	t := table.NewTable(SummaryHeader...)
	for _, s := range summaries {
		t.AddRow(s)
	}
	return t
}
