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

package bea

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/stockparfait/bea/frame"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
)

// decodeScalar decodes a JSON string, number or boolean as a string. The
// second value is false for null and for nested objects or lists.
func decodeScalar(data []byte) (string, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false, err
	}
	switch x := v.(type) {
	case string:
		return x, true, nil
	case json.Number:
		return x.String(), true, nil
	case bool:
		return strconv.FormatBool(x), true, nil
	}
	return "", false, nil
}

// scalar is a JSON value which may be sent as a string or as a number.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	v, _, err := decodeScalar(data)
	if err != nil {
		return err
	}
	*s = scalar(v)
	return nil
}

// Record is one data row of a response: field name to value. A field which is
// null in the response is absent from the Record.
type Record map[string]string

var _ json.Unmarshaler = &Record{}

// UnmarshalJSON implements json.Unmarshaler. Numbers and booleans are kept in
// their JSON spelling; nested values are dropped.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Annotate(err, "record must be a JSON object")
	}
	rec := make(Record, len(raw))
	for k, v := range raw {
		s, ok, err := decodeScalar(v)
		if err != nil {
			return errors.Annotate(err, "failed to decode field %s", k)
		}
		if ok {
			rec[k] = s
		}
	}
	*r = rec
	return nil
}

// ParseValue parses a data value such as "1,234.5". Thousands separators and
// surrounding spaces are ignored. Suppressed or unavailable values, like
// "(NA)" or "(D)", are reported as false, and so are NaN and infinities.
func ParseValue(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// axes collects the distinct dates and columns in the first-seen order.
type axes struct {
	entityField string
	periodField string
	freq        Frequency

	dates    []frame.Date
	columns  []string
	seenDate map[frame.Date]bool
	seenCol  map[string]bool
	recDates []frame.Date // normalized date of each record
	err      error        // the first error; the remaining records are skipped
}

func newAxes(entityField, periodField string, freq Frequency) *axes {
	return &axes{
		entityField: entityField,
		periodField: periodField,
		freq:        freq,
		seenDate:    make(map[frame.Date]bool),
		seenCol:     make(map[string]bool),
	}
}

func (a *axes) add(r Record) *axes {
	if a.err != nil {
		return a
	}
	i := len(a.recDates)
	entity, ok := r[a.entityField]
	if !ok {
		a.err = newError(InvalidResponse, nil, "record %d has no %s", i, a.entityField)
		return a
	}
	period, ok := r[a.periodField]
	if !ok {
		a.err = newError(InvalidResponse, nil, "record %d has no %s", i, a.periodField)
		return a
	}
	date, err := NormalizePeriod(period, a.freq)
	if err != nil {
		a.err = err
		return a
	}
	if !a.seenCol[entity] {
		a.seenCol[entity] = true
		a.columns = append(a.columns, entity)
	}
	if !a.seenDate[date] {
		a.seenDate[date] = true
		a.dates = append(a.dates, date)
	}
	a.recDates = append(a.recDates, date)
	return a
}

// Assemble reshapes a flat list of records into a Frame indexed by the
// normalized period and the entity label, both in the order of first
// appearance. Cells with an absent or unparsable value are left missing.
// When several records address the same cell, the last one wins.
func Assemble(ctx context.Context, records []Record, entityField, periodField, valueField string, freq Frequency) (*frame.Frame, error) {
	a := iterator.Reduce[Record, *axes](
		iterator.FromSlice(records), newAxes(entityField, periodField, freq),
		func(r Record, a *axes) *axes { return a.add(r) })
	if a.err != nil {
		return nil, a.err
	}
	f, err := frame.New(a.dates, a.columns)
	if err != nil {
		return nil, errors.Annotate(err, "failed to create frame")
	}
	skipped := 0
	for i, r := range records {
		s, present := r[valueField]
		v, ok := ParseValue(s)
		if !ok {
			skipped++
			if present {
				logging.Debugf(ctx, "record %d: unparsable %s '%s' for %s at %s",
					i, valueField, s, r[entityField], a.recDates[i])
			}
			continue
		}
		if err := f.Set(a.recDates[i], r[entityField], v); err != nil {
			return nil, errors.Annotate(err, "failed to set value of record %d", i)
		}
	}
	if skipped > 0 {
		logging.Debugf(ctx, "%d of %d records have no numeric %s",
			skipped, len(records), valueField)
	}
	return f, nil
}
