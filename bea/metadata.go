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
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
)

// Dataset descriptor.
type Dataset struct {
	Name        string `json:"DatasetName"`
	Description string `json:"DatasetDescription"`
}

// DatasetList is the result of FetchDatasets.
type DatasetList struct {
	Datasets []Dataset
}

// Names of the datasets in the order received.
func (l *DatasetList) Names() []string {
	names := make([]string, len(l.Datasets))
	for i, d := range l.Datasets {
		names[i] = d.Name
	}
	return names
}

// Report is a human-readable listing of the datasets, in groups of 5.
func (l *DatasetList) Report() string {
	var b strings.Builder
	b.WriteString("Datasets available through the BEA API:\n\n")
	for i, d := range l.Datasets {
		fmt.Fprintf(&b, "%-20s: %s\n", d.Name, d.Description)
		if (i+1)%5 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FetchDatasets lists the datasets available through the API.
func FetchDatasets(ctx context.Context) (*DatasetList, error) {
	var res struct {
		Datasets *[]Dataset `json:"Dataset"`
	}
	q := NewQuery(MethodDatasetList)
	if err := fetchResults(ctx, q, &res); err != nil {
		return nil, err
	}
	if res.Datasets == nil {
		return nil, newError(InvalidResponse, nil, "no Dataset in results")
	}
	logging.Infof(ctx, "BEA: fetched %d datasets", len(*res.Datasets))
	return &DatasetList{Datasets: *res.Datasets}, nil
}

// Flag is a boolean the API may send as 0/1, "0"/"1" or true/false.
type Flag bool

var _ json.Unmarshaler = new(Flag)

func (f *Flag) UnmarshalJSON(data []byte) error {
	s, _, err := decodeScalar(data)
	if err != nil {
		return errors.Annotate(err, "failed to decode flag")
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		*f = true
	case "0", "false", "no", "n", "":
		*f = false
	default:
		return errors.Reason("invalid flag value: %s", data)
	}
	return nil
}

// Parameter descriptor of a dataset. AllValue and DefaultValue are nil when
// the API omits them, which is different from an empty value.
type Parameter struct {
	Name         string  `json:"ParameterName"`
	DataType     string  `json:"ParameterDataType"`
	Description  string  `json:"ParameterDescription"`
	Required     Flag    `json:"ParameterIsRequiredFlag"`
	Multiple     Flag    `json:"MultipleAcceptedFlag"`
	AllValue     *string `json:"AllValue"`
	DefaultValue *string `json:"ParameterDefaultValue"`
}

// ParameterList is the result of FetchParameters.
type ParameterList struct {
	Dataset    string
	Parameters []Parameter
}

// Names of the parameters in the order received.
func (l *ParameterList) Names() []string {
	names := make([]string, len(l.Parameters))
	for i, p := range l.Parameters {
		names[i] = p.Name
	}
	return names
}

func yesNo(f Flag) string {
	if f {
		return "Yes"
	}
	return "No"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Report is a human-readable description of each parameter.
func (l *ParameterList) Report() string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%-25s  %s\n", label, value)
	}
	fmt.Fprintf(&b, "Parameters for the %s dataset.\n\n", l.Dataset)
	for _, p := range l.Parameters {
		line("Parameter name", p.Name)
		line("Description", p.Description)
		line("Required?", yesNo(p.Required))
		if p.AllValue != nil {
			line(`"All" Value`, orNA(*p.AllValue))
		}
		line("Multiple (list) accepted?", yesNo(p.Multiple))
		line("Data type", p.DataType)
		if p.DefaultValue != nil {
			line("Default value", orNA(*p.DefaultValue))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// FetchParameters lists the parameters of a dataset.
func FetchParameters(ctx context.Context, dataset string) (*ParameterList, error) {
	if dataset == "" {
		return nil, newError(MalformedParameters, nil, "dataset name is required")
	}
	var res struct {
		Parameters *[]Parameter `json:"Parameter"`
	}
	q := NewQuery(MethodParameterList).Dataset(dataset)
	if err := fetchResults(ctx, q, &res); err != nil {
		return nil, err
	}
	if res.Parameters == nil {
		return nil, newError(InvalidResponse, nil, "no Parameter in results")
	}
	logging.Infof(ctx, "BEA: fetched %d parameters of %s", len(*res.Parameters), dataset)
	return &ParameterList{Dataset: dataset, Parameters: *res.Parameters}, nil
}

// Field is a key/value pair of a ParameterValue.
type Field struct {
	Key   string
	Value string
}

// ParameterValue is an accepted value descriptor. Its keys depend on the
// dataset and the parameter, and their order is preserved.
type ParameterValue []Field

var _ json.Unmarshaler = &ParameterValue{}

func (p *ParameterValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		return errors.Reason("parameter value must be a JSON object: %s", data)
	}
	var fields []Field
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return errors.Annotate(err, "failed to read key")
		}
		key, ok := t.(string)
		if !ok {
			return errors.Reason("unexpected token %v", t)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return errors.Annotate(err, "failed to read value of %s", key)
		}
		v, ok, err := decodeScalar(raw)
		if err != nil {
			return errors.Annotate(err, "failed to decode value of %s", key)
		}
		if ok {
			fields = append(fields, Field{Key: key, Value: v})
		}
	}
	if _, err := dec.Token(); err != nil {
		return errors.Annotate(err, "unterminated parameter value")
	}
	*p = fields
	return nil
}

// Get the value of the key.
func (p ParameterValue) Get(key string) (string, bool) {
	for _, f := range p {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// ParameterValueList is the result of FetchParameterValues.
type ParameterValueList struct {
	Dataset   string
	Parameter string
	Values    []ParameterValue
}

// Names are the first fields of the values, which is the value itself (e.g.
// "Key" or "TableName") in the API's listings.
func (l *ParameterValueList) Names() []string {
	var names []string
	for _, v := range l.Values {
		if len(v) > 0 {
			names = append(names, v[0].Value)
		}
	}
	return names
}

// Report is a human-readable listing of all the values.
func (l *ParameterValueList) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Values accepted for %s in dataset %s:\n\n", l.Parameter, l.Dataset)
	for _, v := range l.Values {
		for _, f := range v {
			fmt.Fprintf(&b, "%s:  %s\n", f.Key, f.Value)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FetchParameterValues lists the values accepted for a parameter of a
// dataset.
func FetchParameterValues(ctx context.Context, dataset, parameter string) (*ParameterValueList, error) {
	if dataset == "" || parameter == "" {
		return nil, newError(MalformedParameters, nil,
			"dataset and parameter names are required")
	}
	var res struct {
		Values *[]ParameterValue `json:"ParamValue"`
	}
	q := NewQuery(MethodParameterValues).Dataset(dataset).Set("ParameterName", parameter)
	if err := fetchResults(ctx, q, &res); err != nil {
		return nil, err
	}
	if res.Values == nil {
		return nil, newError(InvalidResponse, nil, "no ParamValue in results")
	}
	logging.Infof(ctx, "BEA: fetched %d values of %s in %s",
		len(*res.Values), parameter, dataset)
	return &ParameterValueList{
		Dataset:   dataset,
		Parameter: parameter,
		Values:    *res.Values,
	}, nil
}
