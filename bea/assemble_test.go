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
	"context"
	"encoding/json"
	"testing"

	"github.com/stockparfait/bea/frame"
	"github.com/stockparfait/errors"

	. "github.com/smartystreets/goconvey/convey"
)

func rec(entity, period, value string) Record {
	return Record{"Name": entity, "Period": period, "Value": value}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	Convey("ParseValue", t, func() {
		v, ok := ParseValue("1,234.5")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 1234.5)

		v, ok = ParseValue(" 12,345,678 ")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 12345678.0)

		v, ok = ParseValue("-0.25")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, -0.25)

		for _, s := range []string{"", "(NA)", "(D)", "NaN", "Inf", "1.2.3"} {
			_, ok = ParseValue(s)
			So(ok, ShouldBeFalse)
		}
	})

	Convey("Record decodes strings and numbers", t, func() {
		var r Record
		So(json.Unmarshal([]byte(
			`{"GeoName": "Ohio", "TimePeriod": 2020, "DataValue": "1,234", "Note": null, "X": {"a": 1}}`),
			&r), ShouldBeNil)
		So(r, ShouldResemble, Record{
			"GeoName":    "Ohio",
			"TimePeriod": "2020",
			"DataValue":  "1,234",
		})
	})

	Convey("Assemble", t, func() {
		ctx := context.Background()

		Convey("pivots records by period and entity", func() {
			records := []Record{
				rec("A", "2020", "10"),
				rec("B", "2020", "20"),
				rec("A", "2021", "30"),
			}
			f, err := Assemble(ctx, records, "Name", "Period", "Value", Annual)
			So(err, ShouldBeNil)
			So(f.Dates(), ShouldResemble, []frame.Date{
				frame.NewDate(2020, 1, 1), frame.NewDate(2021, 1, 1)})
			So(f.Columns(), ShouldResemble, []string{"A", "B"})

			v, ok := f.Value(frame.NewDate(2020, 1, 1), "A")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 10.0)
			v, ok = f.Value(frame.NewDate(2020, 1, 1), "B")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 20.0)
			v, ok = f.Value(frame.NewDate(2021, 1, 1), "A")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 30.0)
			_, ok = f.Value(frame.NewDate(2021, 1, 1), "B")
			So(ok, ShouldBeFalse)
			So(f.Missing(), ShouldEqual, 1)
		})

		Convey("axes follow the first appearance", func() {
			records := []Record{
				rec("Z", "2019Q3", "1"),
				rec("M", "2019Q1", "2"),
				rec("A", "2019Q3", "3"),
				rec("M", "2019Q2", "4"),
			}
			f, err := Assemble(ctx, records, "Name", "Period", "Value", Quarterly)
			So(err, ShouldBeNil)
			So(f.Columns(), ShouldResemble, []string{"Z", "M", "A"})
			So(f.Dates(), ShouldResemble, []frame.Date{
				frame.NewDate(2019, 7, 1),
				frame.NewDate(2019, 1, 1),
				frame.NewDate(2019, 4, 1),
			})
		})

		Convey("thousands separators are stripped", func() {
			f, err := Assemble(ctx, []Record{rec("A", "2020", "1,234.5")},
				"Name", "Period", "Value", Annual)
			So(err, ShouldBeNil)
			v, ok := f.Value(frame.NewDate(2020, 1, 1), "A")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 1234.5)
		})

		Convey("absent and unparsable values are missing, not zero", func() {
			records := []Record{
				{"Name": "A", "Period": "2020"},
				rec("B", "2020", "(D)"),
				rec("C", "2020", "0"),
			}
			f, err := Assemble(ctx, records, "Name", "Period", "Value", Annual)
			So(err, ShouldBeNil)
			So(f.Columns(), ShouldResemble, []string{"A", "B", "C"})
			_, ok := f.Value(frame.NewDate(2020, 1, 1), "A")
			So(ok, ShouldBeFalse)
			_, ok = f.Value(frame.NewDate(2020, 1, 1), "B")
			So(ok, ShouldBeFalse)
			v, ok := f.Value(frame.NewDate(2020, 1, 1), "C")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0.0)
		})

		Convey("the last duplicate wins", func() {
			records := []Record{rec("A", "2020", "1"), rec("A", "2020", "2")}
			f, err := Assemble(ctx, records, "Name", "Period", "Value", Annual)
			So(err, ShouldBeNil)
			So(f.NumRows(), ShouldEqual, 1)
			v, _ := f.Value(frame.NewDate(2020, 1, 1), "A")
			So(v, ShouldEqual, 2.0)
		})

		Convey("empty input gives an empty frame", func() {
			f, err := Assemble(ctx, nil, "Name", "Period", "Value", Annual)
			So(err, ShouldBeNil)
			So(f.NumRows(), ShouldEqual, 0)
			So(f.NumColumns(), ShouldEqual, 0)
		})

		Convey("the same input gives the same frame", func() {
			records := []Record{
				rec("B", "2021", "1"),
				rec("A", "2020", "2"),
				rec("C", "2021", "3"),
			}
			f1, err := Assemble(ctx, records, "Name", "Period", "Value", Annual)
			So(err, ShouldBeNil)
			f2, err := Assemble(ctx, records, "Name", "Period", "Value", Annual)
			So(err, ShouldBeNil)
			So(f2.Dates(), ShouldResemble, f1.Dates())
			So(f2.Columns(), ShouldResemble, f1.Columns())
		})

		Convey("a record without the entity field is an invalid response", func() {
			records := []Record{rec("A", "2020", "1"), {"Period": "2020", "Value": "2"}}
			_, err := Assemble(ctx, records, "Name", "Period", "Value", Annual)
			So(errors.Is(err, ErrInvalidResponse), ShouldBeTrue)
		})

		Convey("a malformed period fails the call", func() {
			_, err := Assemble(ctx, []Record{rec("A", "20-20", "1")},
				"Name", "Period", "Value", Annual)
			So(errors.Is(err, ErrMalformedPeriod), ShouldBeTrue)
		})

		Convey("monthly frequency is unsupported", func() {
			_, err := Assemble(ctx, []Record{rec("A", "2020M01", "1")},
				"Name", "Period", "Value", Monthly)
			So(errors.Is(err, ErrUnsupportedFrequency), ShouldBeTrue)
		})
	})
}
