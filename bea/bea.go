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
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default base URL of the server. It may be overwritten in tests
// before creating a new client.
var URL = "https://apps.bea.gov/api/data"

// API method names.
const (
	MethodDatasetList     = "GetDataSetList"
	MethodParameterList   = "GetParameterList"
	MethodParameterValues = "GetParameterValues"
	MethodData            = "GetData"
)

// Client for querying the BEA API.
type Client struct {
	baseURL string // the base URL of the server
	apiKey  string // the user ID issued by BEA
}

// newClient creates a new client.
func newClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client based on the API key and injects it into the
// context.
func UseClient(ctx context.Context, apiKey string) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(URL, apiKey))
}

// param is a single named query parameter. List values are kept as separate
// elements until the query is rendered.
type param struct {
	name   string
	values []string
}

// Query is a builder for an API request: the method, the optional dataset
// name and an ordered set of parameters.
type Query struct {
	method  string
	dataset string
	params  []param
	err     error // the first malformed parameter, if any
}

// NewQuery creates a new query for the API method.
func NewQuery(method string) *Query {
	return &Query{method: method}
}

// Copy creates a deep copy of the query. It is primarily used in its builder
// methods.
func (q *Query) Copy() *Query {
	q2 := Query{method: q.method, dataset: q.dataset, err: q.err}
	q2.params = make([]param, len(q.params))
	for i, p := range q.params {
		q2.params[i] = param{name: p.name, values: append([]string{}, p.values...)}
	}
	return &q2
}

// Dataset sets the dataset name. This and other builder methods always create
// a deep copy of the query, leaving the original intact.
func (q *Query) Dataset(name string) *Query {
	q2 := q.Copy()
	q2.dataset = name
	return q2
}

// Set the parameter to the values. Slices and arrays are flattened, and all
// the elements are joined by commas in the request. Setting the same name
// again replaces its value in place. A value which cannot be stringified
// records a MalformedParameters error, reported by Err().
func (q *Query) Set(name string, values ...any) *Query {
	q2 := q.Copy()
	var strs []string
	for _, v := range values {
		s, err := stringify(v)
		if err != nil {
			if q2.err == nil {
				q2.err = newError(MalformedParameters, err, "parameter %s", name)
			}
			return q2
		}
		strs = append(strs, s...)
	}
	for i, p := range q2.params {
		if p.name == name {
			q2.params[i].values = strs
			return q2
		}
	}
	q2.params = append(q2.params, param{name: name, values: strs})
	return q2
}

// Get the value of the parameter as it will be sent.
func (q *Query) Get(name string) (string, bool) {
	for _, p := range q.params {
		if p.name == name {
			return strings.Join(p.values, ","), true
		}
	}
	return "", false
}

// Err returns the first error recorded by the builder methods.
func (q *Query) Err() error {
	return q.err
}

// stringify a parameter value into one or more list elements.
func stringify(v any) ([]string, error) {
	if rv := reflect.ValueOf(v); !rv.IsValid() ||
		(rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil, errors.Reason("nil value")
	}
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case fmt.Stringer:
		return []string{x.String()}, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return []string{strconv.FormatBool(rv.Bool())}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []string{strconv.FormatInt(rv.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []string{strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		return []string{strconv.FormatFloat(rv.Float(), 'f', -1, 64)}, nil
	case reflect.String:
		return []string{rv.String()}, nil
	case reflect.Slice, reflect.Array:
		var res []string
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i)
			if k := el.Kind(); k == reflect.Slice || k == reflect.Array {
				return nil, errors.Reason("nested lists are not supported: %v", v)
			}
			s, err := stringify(el.Interface())
			if err != nil {
				return nil, errors.Annotate(err, "element %d", i)
			}
			res = append(res, s...)
		}
		return res, nil
	}
	return nil, errors.Reason("unsupported value type %T: %v", v, v)
}

// URL renders the complete request URL with the parameters in their insertion
// order. List separators are left unescaped, e.g. "Year=2018,2019".
func (q *Query) URL(baseURL, apiKey string) string {
	var b strings.Builder
	add := func(name string, values ...string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		for i, s := range values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(url.QueryEscape(s))
		}
	}
	add("UserID", apiKey)
	add("method", q.method)
	if q.dataset != "" {
		add("datasetname", q.dataset)
	}
	for _, p := range q.params {
		add(p.name, p.values...)
	}
	add("ResultFormat", "JSON")
	return baseURL + "?" + b.String()
}

// String is a short description of the query for logs and errors. It never
// includes the user ID.
func (q *Query) String() string {
	parts := []string{q.method}
	if q.dataset != "" {
		parts = append(parts, q.dataset)
	}
	for _, p := range q.params {
		parts = append(parts, p.name+"="+strings.Join(p.values, ","))
	}
	return strings.Join(parts, " ")
}

// apiError is the error object the API sends instead of results.
type apiError struct {
	Code        scalar `json:"APIErrorCode"`
	Description string `json:"APIErrorDescription"`
	Detail      *struct {
		Description string `json:"Description"`
	} `json:"ErrorDetail"`
}

func (e *apiError) err() *Error {
	msg := fmt.Sprintf("API error %s: %s", e.Code, e.Description)
	if e.Detail != nil && e.Detail.Description != "" {
		msg += " (" + e.Detail.Description + ")"
	}
	return newError(InvalidResponse, nil, "%s", msg)
}

// response is the envelope of every API response.
type response struct {
	BEAAPI struct {
		Results json.RawMessage `json:"Results"`
		Error   *apiError       `json:"Error"`
	} `json:"BEAAPI"`
}

// results extracts the results object from the envelope. The API sometimes
// wraps the object into a single element list.
func (r *response) results() (json.RawMessage, error) {
	if r.BEAAPI.Error != nil {
		return nil, r.BEAAPI.Error.err()
	}
	raw := bytes.TrimSpace(r.BEAAPI.Results)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, newError(InvalidResponse, nil, "response has no results")
	}
	if raw[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, newError(InvalidResponse, err, "failed to decode results list")
		}
		if len(list) == 0 {
			return nil, newError(InvalidResponse, nil, "results list is empty")
		}
		raw = bytes.TrimSpace(list[0])
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil, newError(InvalidResponse, nil, "results is not an object")
	}
	var e struct {
		Error *apiError `json:"Error"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, newError(InvalidResponse, err, "failed to decode results")
	}
	if e.Error != nil {
		return nil, e.Error.err()
	}
	return raw, nil
}

// fetchResults executes the query using the Client from the context and
// decodes the results object into v.
func fetchResults(ctx context.Context, q *Query, v any) error {
	if err := q.Err(); err != nil {
		return err
	}
	client := GetClient(ctx)
	if client == nil {
		return errors.Reason("no client in context")
	}
	var resp response
	uri := q.URL(client.baseURL, client.apiKey)
	if err := fetch.FetchJSON(ctx, uri, &resp, nil, nil); err != nil {
		return newError(InvalidResponse, err, "failed to fetch %s", q)
	}
	raw, err := resp.results()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return newError(InvalidResponse, err, "failed to decode results of %s", q)
	}
	return nil
}
