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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

type Series struct {
	Code  string `json:"code" required:"true"`
	Scale *int   `json:"scale" default:"1"`
}

func (s *Series) InitMessage(js any) error {
	return Init(s, js)
}

type Query struct {
	Dataset   string            `json:"dataset" required:"true" choices:"NIPA,FixedAssets"`
	Frequency string            `json:"frequency" default:"A" choices:"A,Q"`
	Years     []int             `json:"years"`
	Millions  bool              `json:"show millions"`
	Weight    float64           `default:"0.5"` // json key is "Weight"
	Series    []Series          `json:"series"`
	Main      *Series           `json:"main"`
	Labels    map[string]string `json:"labels"`
	Ignored   int               `json:"-"`
	internal  int
}

func (q *Query) InitMessage(js any) error {
	return Init(q, js)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_config")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("Init works", t, func() {
		Convey("with required fields only", func() {
			var q Query
			So(q.InitMessage(testutil.JSON(`{"dataset": "NIPA"}`)), ShouldBeNil)
			So(q, ShouldResemble, Query{Dataset: "NIPA", Frequency: "A", Weight: 0.5})
		})

		Convey("with all the fields", func() {
			var q Query
			So(q.InitMessage(testutil.JSON(`{
  "dataset": "FixedAssets",
  "frequency": "Q",
  "years": [2018, 2019],
  "show millions": true,
  "Weight": 2,
  "series": [{"code": "A"}, {"code": "B", "scale": 1000}],
  "main": {"code": "C"},
  "labels": {"x": "y"}
}`)), ShouldBeNil)
			one, thousand := 1, 1000
			So(q, ShouldResemble, Query{
				Dataset:   "FixedAssets",
				Frequency: "Q",
				Years:     []int{2018, 2019},
				Millions:  true,
				Weight:    2,
				Series:    []Series{{Code: "A", Scale: &one}, {Code: "B", Scale: &thousand}},
				Main:      &Series{Code: "C", Scale: &one},
				Labels:    map[string]string{"x": "y"},
			})
		})

		Convey("rejects missing required fields", func() {
			var q Query
			So(q.InitMessage(testutil.JSON(`{}`)), ShouldNotBeNil)
		})

		Convey("rejects values out of choices", func() {
			var q Query
			So(q.InitMessage(testutil.JSON(`{"dataset": "Other"}`)), ShouldNotBeNil)
			So(q.InitMessage(testutil.JSON(`{"dataset": "NIPA", "frequency": "M"}`)),
				ShouldNotBeNil)
		})

		Convey("rejects wrong types", func() {
			var q Query
			So(q.InitMessage(testutil.JSON(`{"dataset": "NIPA", "years": "2019"}`)),
				ShouldNotBeNil)
			So(q.InitMessage(testutil.JSON(`{"dataset": "NIPA", "years": [2019.5]}`)),
				ShouldNotBeNil)
			So(q.InitMessage(testutil.JSON(`{"dataset": "NIPA", "series": [{}]}`)),
				ShouldNotBeNil)
		})

		Convey("rejects unknown fields", func() {
			var q Query
			So(q.InitMessage(testutil.JSON(`{"dataset": "NIPA", "Ignored": 1}`)),
				ShouldNotBeNil)
		})

		Convey("rejects non-objects", func() {
			var q Query
			So(q.InitMessage(testutil.JSON(`[1, 2]`)), ShouldNotBeNil)
		})
	})

	Convey("FromFile works", t, func() {
		path := filepath.Join(tmpdir, "query.json")
		So(testutil.WriteFile(path, `{"dataset": "NIPA", "years": [2020]}`), ShouldBeNil)
		var q Query
		So(FromFile(&q, path), ShouldBeNil)
		So(q.Years, ShouldResemble, []int{2020})

		So(FromFile(&q, filepath.Join(tmpdir, "nonexistent.json")), ShouldNotBeNil)
	})

	Convey("LoadKey works", t, func() {
		Convey("from config.toml", func() {
			dir := filepath.Join(tmpdir, "toml")
			So(os.MkdirAll(dir, 0755), ShouldBeNil)
			So(testutil.WriteFile(filepath.Join(dir, "config.toml"), `key = "tomlKey"
`), ShouldBeNil)
			So(testutil.WriteFile(filepath.Join(dir, ".env"), "BEA_API_KEY=envKey\n"),
				ShouldBeNil)
			key, err := LoadKey(dir)
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "tomlKey")
		})

		Convey("from .env", func() {
			dir := filepath.Join(tmpdir, "dotenv")
			So(os.MkdirAll(dir, 0755), ShouldBeNil)
			So(testutil.WriteFile(filepath.Join(dir, ".env"), "BEA_API_KEY=envKey\n"),
				ShouldBeNil)
			key, err := LoadKey(dir)
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "envKey")
		})

		Convey("fails on a malformed config.toml", func() {
			dir := filepath.Join(tmpdir, "bad")
			So(os.MkdirAll(dir, 0755), ShouldBeNil)
			So(testutil.WriteFile(filepath.Join(dir, "config.toml"), `key = `),
				ShouldBeNil)
			_, err := LoadKey(dir)
			So(err, ShouldNotBeNil)
		})
	})
}
