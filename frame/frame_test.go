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

package frame

import (
	"bytes"
	"math"
	"testing"

	"github.com/stockparfait/bea/table"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFrame(t *testing.T) {
	t.Parallel()

	Convey("Date type", t, func() {
		Convey("parses and prints", func() {
			d, err := NewDateFromString("2019-04-01")
			So(err, ShouldBeNil)
			So(d, ShouldResemble, NewDate(2019, 4, 1))
			So(d.String(), ShouldEqual, "2019-04-01")

			_, err = NewDateFromString("2019-13-01")
			So(err, ShouldNotBeNil)
		})

		Convey("compares the dates correctly", func() {
			So(NewDate(2019, 10, 15).After(NewDate(2018, 11, 25)), ShouldBeTrue)
			So(NewDate(2019, 10, 15).Before(NewDate(2019, 11, 25)), ShouldBeTrue)
			So(NewDate(2019, 10, 15).Before(NewDate(2019, 10, 25)), ShouldBeTrue)
			So(NewDate(2019, 10, 15).Before(NewDate(2019, 10, 15)), ShouldBeFalse)
			So(NewDate(2019, 10, 15).InRange(NewDate(2019, 1, 1), Date{}), ShouldBeTrue)
			So(NewDate(2019, 10, 15).InRange(Date{}, NewDate(2019, 1, 1)), ShouldBeFalse)
		})

		Convey("InitMessage", func() {
			var d Date
			So(d.InitMessage("2021-10-01"), ShouldBeNil)
			So(d, ShouldResemble, NewDate(2021, 10, 1))
			So(d.InitMessage(42.0), ShouldNotBeNil)
		})
	})

	Convey("Frame", t, func() {
		d1 := NewDate(2020, 1, 1)
		d2 := NewDate(2021, 1, 1)
		f, err := New([]Date{d1, d2}, []string{"A", "B"})
		So(err, ShouldBeNil)

		Convey("starts with all cells missing", func() {
			So(f.NumRows(), ShouldEqual, 2)
			So(f.NumColumns(), ShouldEqual, 2)
			So(f.Missing(), ShouldEqual, 4)
			_, ok := f.Value(d1, "A")
			So(ok, ShouldBeFalse)
		})

		Convey("sets and reads values", func() {
			So(f.Set(d1, "A", 10), ShouldBeNil)
			So(f.Set(d2, "B", 0), ShouldBeNil)
			v, ok := f.Value(d1, "A")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 10.0)
			v, ok = f.At(1, 1)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0.0)
			So(f.Missing(), ShouldEqual, 2)

			col := f.Column("A")
			So(col[0], ShouldEqual, 10.0)
			So(math.IsNaN(col[1]), ShouldBeTrue)
			So(f.Column("C"), ShouldBeNil)
		})

		Convey("rejects unknown cells", func() {
			So(f.Set(NewDate(2022, 1, 1), "A", 1), ShouldNotBeNil)
			So(f.Set(d1, "C", 1), ShouldNotBeNil)
			_, ok := f.Value(d1, "C")
			So(ok, ShouldBeFalse)
		})

		Convey("rejects duplicate axes", func() {
			_, err := New([]Date{d1, d1}, []string{"A"})
			So(err, ShouldNotBeNil)
			_, err = New([]Date{d1}, []string{"A", "A"})
			So(err, ShouldNotBeNil)
		})

		Convey("restricts to a date range", func() {
			d3 := NewDate(2022, 1, 1)
			g, err := New([]Date{d2, d1, d3}, []string{"A"})
			So(err, ShouldBeNil)
			So(g.Set(d1, "A", 1), ShouldBeNil)
			So(g.Set(d2, "A", 2), ShouldBeNil)
			So(g.Set(d3, "A", 3), ShouldBeNil)

			r := g.Range(d2, Date{})
			So(r.Dates(), ShouldResemble, []Date{d2, d3})
			So(r.Column("A"), ShouldResemble, []float64{2, 3})
			v, ok := r.Value(d3, "A")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 3.0)
			_, ok = r.Value(d1, "A")
			So(ok, ShouldBeFalse)

			r = g.Range(Date{}, d1)
			So(r.Dates(), ShouldResemble, []Date{d1})
			So(g.Range(Date{}, Date{}).NumRows(), ShouldEqual, 3)
			So(g.Range(d3, d1).NumRows(), ShouldEqual, 0)
		})

		Convey("converts to table", func() {
			So(f.Set(d1, "A", 1234.5), ShouldBeNil)
			So(f.Set(d1, "B", 20), ShouldBeNil)
			So(f.Set(d2, "A", 30), ShouldBeNil)
			var buf bytes.Buffer
			So(f.Table("").WriteCSV(&buf, table.Params{}), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
Date,A,B
2020-01-01,1234.5,20
2021-01-01,30,
`)
			buf.Reset()
			So(f.Table("n/a").WriteText(&buf, table.Params{}), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
      Date |      A |   B
---------- | ------ | ---
2020-01-01 | 1234.5 |  20
2021-01-01 |     30 | n/a
`)
		})
	})
}
