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
	"fmt"
	"testing"

	"github.com/stockparfait/bea/frame"
	"github.com/stockparfait/errors"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPeriod(t *testing.T) {
	t.Parallel()

	Convey("ParseFrequency", t, func() {
		f, err := ParseFrequency("q")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, Quarterly)
		_, err = ParseFrequency("W")
		So(errors.Is(err, ErrMalformedParameters), ShouldBeTrue)
	})

	Convey("NormalizePeriod", t, func() {
		Convey("annual periods start in January", func() {
			for _, y := range []uint16{1929, 2015, 2024} {
				d, err := NormalizePeriod(fmt.Sprintf("%d", y), Annual)
				So(err, ShouldBeNil)
				So(d, ShouldResemble, frame.NewDate(y, 1, 1))
			}
		})

		Convey("quarters map to months 1, 4, 7 and 10", func() {
			months := []uint8{1, 4, 7, 10}
			for q, m := range months {
				d, err := NormalizePeriod(fmt.Sprintf("2015Q%d", q+1), Quarterly)
				So(err, ShouldBeNil)
				So(d, ShouldResemble, frame.NewDate(2015, m, 1))

				d, err = NormalizePeriod(fmt.Sprintf("2015%d", q+1), Quarterly)
				So(err, ShouldBeNil)
				So(d, ShouldResemble, frame.NewDate(2015, m, 1))
			}
		})

		Convey("monthly frequency is unsupported", func() {
			_, err := NormalizePeriod("2015M01", Monthly)
			So(errors.Is(err, ErrUnsupportedFrequency), ShouldBeTrue)
		})

		Convey("unknown frequency is malformed parameters", func() {
			_, err := NormalizePeriod("2015", Frequency("W"))
			So(errors.Is(err, ErrMalformedParameters), ShouldBeTrue)
		})

		Convey("malformed periods are rejected", func() {
			cases := []struct {
				code string
				freq Frequency
			}{
				{"", Annual},
				{"201", Annual},
				{"20l5", Annual},
				{"0000", Annual},
				{"2015Q1", Annual},
				{"2015", Quarterly},
				{"2015Q5", Quarterly},
				{"20150", Quarterly},
				{"2015X1", Quarterly},
				{"2015Q12", Quarterly},
			}
			for _, c := range cases {
				_, err := NormalizePeriod(c.code, c.freq)
				So(errors.Is(err, ErrMalformedPeriod), ShouldBeTrue)
			}
		})
	})
}
