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

	"github.com/stockparfait/bea/config"
	"github.com/stockparfait/bea/frame"
)

// Request is a JSON configuration of a single data call, e.g.:
//
//	{"dataset": "NIPA", "table id": "T10101", "frequency": "Q", "years": [2019, 2020]}
type Request struct {
	Dataset string `json:"dataset" required:"true" choices:"Regional,NIPA,FixedAssets"`
	// Used by NIPA and FixedAssets.
	TableID string `json:"table id"`
	// Used by Regional.
	KeyCode string   `json:"key code"`
	GeoFips []string `json:"geo fips"`
	// Used by NIPA.
	Frequency    string `json:"frequency" choices:",A,Q,M"`
	ShowMillions bool   `json:"show millions"`

	Years []int `json:"years"`
	// Inclusive date range of the rows to keep, "YYYY-MM-DD". Either bound
	// may be omitted.
	Start *frame.Date `json:"start"`
	End   *frame.Date `json:"end"`
}

var _ config.Message = &Request{}

// InitMessage implements config.Message. Parameters of the selected dataset
// are checked here, so that a bad request fails before any I/O.
func (r *Request) InitMessage(js any) error {
	if err := config.Init(r, js); err != nil {
		return newError(MalformedParameters, err, "invalid request")
	}
	if start, end := r.dateRange(); !start.IsZero() && !end.IsZero() && end.Before(start) {
		return newError(MalformedParameters, nil, "end %s is before start %s", end, start)
	}
	var err error
	switch r.Dataset {
	case "Regional":
		_, err = r.regional().Build()
	case "NIPA":
		_, err = r.nipa().Build()
	case "FixedAssets":
		_, err = r.fixedAssets().Build()
	}
	return err
}

func (r *Request) regional() RegionalQuery {
	return RegionalQuery{KeyCode: r.KeyCode, GeoFips: r.GeoFips, Years: r.Years}
}

func (r *Request) nipa() NIPAQuery {
	return NIPAQuery{
		TableID:      r.TableID,
		Frequency:    Frequency(r.Frequency),
		Years:        r.Years,
		ShowMillions: r.ShowMillions,
	}
}

func (r *Request) fixedAssets() FixedAssetsQuery {
	return FixedAssetsQuery{TableID: r.TableID, Years: r.Years}
}

func (r *Request) dateRange() (start, end frame.Date) {
	if r.Start != nil {
		start = *r.Start
	}
	if r.End != nil {
		end = *r.End
	}
	return
}

// Fetch executes the request and keeps only the rows within the date range,
// when set.
func (r *Request) Fetch(ctx context.Context) (*frame.Frame, error) {
	var f *frame.Frame
	var err error
	switch r.Dataset {
	case "Regional":
		f, err = FetchRegional(ctx, r.regional())
	case "NIPA":
		f, err = FetchNIPA(ctx, r.nipa())
	case "FixedAssets":
		f, err = FetchFixedAssets(ctx, r.fixedAssets())
	default:
		return nil, newError(MalformedParameters, nil, "unknown dataset '%s'", r.Dataset)
	}
	if err != nil {
		return nil, err
	}
	if r.Start == nil && r.End == nil {
		return f, nil
	}
	return f.Range(r.dateRange()), nil
}
