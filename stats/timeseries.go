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
	"math"

	"github.com/stockparfait/bea/frame"
	"github.com/stockparfait/errors"

	"golang.org/x/exp/slices"
)

// Timeseries stores numeric values along with their dates. The dates are
// always sorted in ascending order.
type Timeseries struct {
	dates []frame.Date
	data  []float64
}

// NewTimeseries creates a new Timeseries. The dates are expected to be sorted
// in ascending order (not checked). It panics if dates and data have different
// lengths. The argument slices are used as is, not copied.
func NewTimeseries(dates []frame.Date, data []float64) *Timeseries {
	if len(dates) != len(data) {
		panic(errors.Reason("len(dates) [%d] != len(data) [%d]",
			len(dates), len(data)))
	}
	return &Timeseries{dates: dates, data: data}
}

// NewTimeseriesFromFrame extracts the column of the Frame as a Timeseries.
// Missing cells are dropped, and the dates are sorted, since a Frame keeps
// its rows in the order the dates first appeared in the response.
func NewTimeseriesFromFrame(f *frame.Frame, column string) (*Timeseries, error) {
	values := f.Column(column)
	if values == nil {
		return nil, errors.Reason("no column '%s' in the frame", column)
	}
	idx := make([]int, 0, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			idx = append(idx, i)
		}
	}
	all := f.Dates()
	slices.SortFunc(idx, func(i, j int) bool { return all[i].Before(all[j]) })
	dates := make([]frame.Date, len(idx))
	data := make([]float64, len(idx))
	for k, i := range idx {
		dates[k] = all[i]
		data[k] = values[i]
	}
	return NewTimeseries(dates, data), nil
}

// Dates of the Timeseries.
func (t *Timeseries) Dates() []frame.Date { return t.dates }

// Data of the Timeseries.
func (t *Timeseries) Data() []float64 { return t.data }

// Len is the number of points.
func (t *Timeseries) Len() int { return len(t.dates) }

// Copy makes a deep copy of the Timeseries.
func (t *Timeseries) Copy() *Timeseries {
	return NewTimeseries(append([]frame.Date{}, t.dates...), append([]float64{}, t.data...))
}

// Check that the Timeseries is consistent: the lengths of dates and data are
// the same, and the dates are strictly ascending.
func (t *Timeseries) Check() error {
	if len(t.dates) != len(t.data) {
		return errors.Reason("len(dates) [%d] != len(data) [%d]",
			len(t.dates), len(t.data))
	}
	for i := 1; i < len(t.dates); i++ {
		if !t.dates[i-1].Before(t.dates[i]) {
			return errors.Reason("dates[%d] = %s >= dates[%d] = %s",
				i-1, t.dates[i-1], i, t.dates[i])
		}
	}
	return nil
}

// Range extracts the sub-series within the inclusive date interval. It may
// return an empty Timeseries, but never nil.
func (t *Timeseries) Range(start, end frame.Date) *Timeseries {
	s := len(t.dates)
	e := s
	for i, d := range t.dates {
		if s == len(t.dates) && !d.Before(start) {
			s = i
		}
		if d.After(end) {
			e = i
			break
		}
	}
	if start.After(end) || s >= e {
		return NewTimeseries(nil, nil)
	}
	return NewTimeseries(t.dates[s:e], t.data[s:e])
}

// PctChange computes the percent change over n periods: 100*(x[t]/x[t-n]-1),
// dated at t. Points with a zero base are skipped.
func (t *Timeseries) PctChange(n int) *Timeseries {
	if n < 1 {
		panic(errors.Reason("n=%d must be >= 1", n))
	}
	var dates []frame.Date
	var data []float64
	for i := n; i < len(t.data); i++ {
		if t.data[i-n] == 0 {
			continue
		}
		dates = append(dates, t.dates[i])
		data = append(data, 100*(t.data[i]/t.data[i-n]-1))
	}
	return NewTimeseries(dates, data)
}
