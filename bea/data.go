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

	"github.com/stockparfait/bea/frame"
	"github.com/stockparfait/logging"
)

// Dataset names of the data calls.
const (
	DatasetRegional    = "RegionalData"
	DatasetNIPA        = "NIPA"
	DatasetFixedAssets = "FixedAssets"
)

// Field names of the data records.
const (
	FieldGeoName         = "GeoName"
	FieldLineDescription = "LineDescription"
	FieldTimePeriod      = "TimePeriod"
	FieldDataValue       = "DataValue"
)

// Wildcards for the Year parameter.
const (
	AllYears = "ALL" // regional data
	AnyYear  = "X"   // NIPA and fixed assets: all years
)

// years returns the Year parameter value: the list, or the wildcard when the
// list is empty.
func years(ys []int, wildcard string) any {
	if len(ys) == 0 {
		return wildcard
	}
	return ys
}

// fetchData executes a GetData query and returns its data records.
func fetchData(ctx context.Context, q *Query) ([]Record, error) {
	var res struct {
		Data *[]Record `json:"Data"`
	}
	if err := fetchResults(ctx, q, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, newError(InvalidResponse, nil, "no Data in results of %s", q)
	}
	logging.Infof(ctx, "BEA: fetched %d records for %s", len(*res.Data), q)
	return *res.Data, nil
}

// RegionalQuery selects regional statistics (state, county and MSA).
type RegionalQuery struct {
	KeyCode string   // statistic code, required
	GeoFips []string // "STATE" (default), "COUNTY", "MSA" or FIPS codes
	Years   []int    // default: all years
}

// Build the API query, checking the parameters.
func (r RegionalQuery) Build() (*Query, error) {
	if r.KeyCode == "" {
		return nil, newError(MalformedParameters, nil, "KeyCode is required")
	}
	var geo any = "STATE"
	if len(r.GeoFips) > 0 {
		geo = r.GeoFips
	}
	q := NewQuery(MethodData).Dataset(DatasetRegional).
		Set("KeyCode", r.KeyCode).
		Set("GeoFips", geo).
		Set("Year", years(r.Years, AllYears))
	return q, q.Err()
}

// FetchRegional retrieves annual regional statistics with one column per
// geographic area.
func FetchRegional(ctx context.Context, r RegionalQuery) (*frame.Frame, error) {
	q, err := r.Build()
	if err != nil {
		return nil, err
	}
	records, err := fetchData(ctx, q)
	if err != nil {
		return nil, err
	}
	return Assemble(ctx, records, FieldGeoName, FieldTimePeriod, FieldDataValue, Annual)
}

// NIPAQuery selects a table of the National Income and Product Accounts.
type NIPAQuery struct {
	TableID      string    // required
	Frequency    Frequency // required: Annual or Quarterly
	Years        []int     // default: all years
	ShowMillions bool      // report values in millions where applicable
}

// Build the API query, checking the parameters.
func (n NIPAQuery) Build() (*Query, error) {
	if n.TableID == "" {
		return nil, newError(MalformedParameters, nil, "TableID is required")
	}
	switch n.Frequency {
	case Annual, Quarterly:
	case Monthly:
		return nil, newError(UnsupportedFrequency, nil,
			"NIPA table %s is only available annually or quarterly", n.TableID)
	case "":
		return nil, newError(MalformedParameters, nil, "Frequency is required")
	default:
		return nil, newError(MalformedParameters, nil,
			"unknown frequency '%s'", n.Frequency)
	}
	millions := "N"
	if n.ShowMillions {
		millions = "Y"
	}
	q := NewQuery(MethodData).Dataset(DatasetNIPA).
		Set("TableID", n.TableID).
		Set("Frequency", n.Frequency).
		Set("Year", years(n.Years, AnyYear)).
		Set("ShowMillions", millions)
	return q, q.Err()
}

// FetchNIPA retrieves a NIPA table with one column per table line.
func FetchNIPA(ctx context.Context, n NIPAQuery) (*frame.Frame, error) {
	q, err := n.Build()
	if err != nil {
		return nil, err
	}
	records, err := fetchData(ctx, q)
	if err != nil {
		return nil, err
	}
	return Assemble(ctx, records, FieldLineDescription, FieldTimePeriod, FieldDataValue, n.Frequency)
}

// FixedAssetsQuery selects a table of the Fixed Assets accounts, which are
// annual only.
type FixedAssetsQuery struct {
	TableID string // required
	Years   []int  // default: all years
}

// Build the API query, checking the parameters.
func (a FixedAssetsQuery) Build() (*Query, error) {
	if a.TableID == "" {
		return nil, newError(MalformedParameters, nil, "TableID is required")
	}
	q := NewQuery(MethodData).Dataset(DatasetFixedAssets).
		Set("TableID", a.TableID).
		Set("Year", years(a.Years, AnyYear))
	return q, q.Err()
}

// FetchFixedAssets retrieves a Fixed Assets table with one column per table
// line.
func FetchFixedAssets(ctx context.Context, a FixedAssetsQuery) (*frame.Frame, error) {
	q, err := a.Build()
	if err != nil {
		return nil, err
	}
	records, err := fetchData(ctx, q)
	if err != nil {
		return nil, err
	}
	return Assemble(ctx, records, FieldLineDescription, FieldTimePeriod, FieldDataValue, Annual)
}
