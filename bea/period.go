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
	"strconv"
	"strings"

	"github.com/stockparfait/bea/frame"
)

// Frequency of a data series, as the API spells it.
type Frequency string

const (
	Annual    = Frequency("A")
	Quarterly = Frequency("Q")
	Monthly   = Frequency("M")
)

// ParseFrequency accepts "A", "Q" or "M" in any case.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToUpper(s)); f {
	case Annual, Quarterly, Monthly:
		return f, nil
	}
	return "", newError(MalformedParameters, nil, "unknown frequency '%s'", s)
}

// parseYear of a period code from its first 4 characters.
func parseYear(code string) (uint16, bool) {
	if len(code) < 4 {
		return 0, false
	}
	for _, c := range code[:4] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(code[:4])
	if err != nil || y == 0 {
		return 0, false
	}
	return uint16(y), true
}

// NormalizePeriod converts a period code to the first day of its period.
// Annual codes are "YYYY". Quarterly codes are "YYYYQn" or "YYYYn" with n in
// 1..4, which map to months 1, 4, 7 and 10. Monthly periods are not
// supported.
func NormalizePeriod(code string, freq Frequency) (frame.Date, error) {
	switch freq {
	case Annual, Quarterly:
	case Monthly:
		return frame.Date{}, newError(UnsupportedFrequency, nil,
			"monthly period '%s'", code)
	default:
		return frame.Date{}, newError(MalformedParameters, nil,
			"unknown frequency '%s'", freq)
	}
	year, ok := parseYear(code)
	if !ok {
		return frame.Date{}, newError(MalformedPeriod, nil, "no year in '%s'", code)
	}
	if freq == Annual {
		if len(code) != 4 {
			return frame.Date{}, newError(MalformedPeriod, nil,
				"annual period must be 'YYYY': '%s'", code)
		}
		return frame.NewDate(year, 1, 1), nil
	}
	switch {
	case len(code) == 5:
	case len(code) == 6 && code[4] == 'Q':
	default:
		return frame.Date{}, newError(MalformedPeriod, nil,
			"quarterly period must be 'YYYYQn': '%s'", code)
	}
	q := code[len(code)-1]
	if q < '1' || q > '4' {
		return frame.Date{}, newError(MalformedPeriod, nil,
			"quarter must be 1..4: '%s'", code)
	}
	return frame.NewDate(year, uint8(q-'1')*3+1, 1), nil
}
