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

// Package bea is a client for the data API of the U.S. Bureau of Economic
// Analysis (BEA).
//
// Official documentation is at https://apps.bea.gov/api/signup/ .
//
// Every request is a GET with the user ID, the method name, the dataset name
// and the method's parameters in the query string. The JSON response wraps the
// payload as {"BEAAPI": {"Results": ...}}. The API reports most errors in the
// same envelope rather than by HTTP status, so a response without the expected
// results is an InvalidResponse error.
//
// Metadata calls (FetchDatasets, FetchParameters, FetchParameterValues)
// describe what can be requested. Data calls (FetchRegional, FetchNIPA,
// FetchFixedAssets) return a frame.Frame with one row per period and one
// column per geography or table line.
//
// A Client is injected into the context with UseClient, and all the calls
// take it from there:
//
//	ctx = bea.UseClient(ctx, "YourBEAUserID")
//	f, err := bea.FetchNIPA(ctx, bea.NIPAQuery{TableID: "T10101", Frequency: bea.Quarterly})
package bea
