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

// Package config reads JSON configuration into Go structs and locates the API
// key for the command line tools.
package config

import (
	"encoding/json"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
	"golang.org/x/exp/slices"
)

// Message is a JSON configuration object, typically implemented by a struct
// pointer:
//
//	type Query struct {
//		Table string `json:"table id" required:"true"`
//		Frequency string `json:"frequency" default:"A" choices:"A,Q"`
//		Years []int `json:"years"`
//	}
//
//	func (q *Query) InitMessage(js any) error {
//		return config.Init(q, js)
//	}
type Message interface {
	// InitMessage populates the message from a generic JSON value as decoded by
	// encoding/json into an `any`. Implementations normally call Init and then
	// run their own consistency checks.
	InitMessage(js any) error
}

var messageType = reflect.TypeOf((*Message)(nil)).Elem()

// initMessage creates a new value of the pointer type t and calls its
// InitMessage.
func initMessage(js any, t reflect.Type) (reflect.Value, error) {
	if t.Kind() != reflect.Ptr {
		return reflect.Value{}, errors.Reason(
			"type %s implements Message but is not a pointer", t)
	}
	ptr := reflect.New(t.Elem())
	if err := ptr.Interface().(Message).InitMessage(js); err != nil {
		return reflect.Value{}, errors.Annotate(err, "failed to init %s", t.Elem())
	}
	return ptr, nil
}

// convert a generic JSON value to the type t. A nil js yields the zero value,
// except for struct Messages which are initialized from an empty object to get
// their defaults.
func convert(js any, t reflect.Type) (reflect.Value, error) {
	if t.Implements(messageType) {
		if js == nil {
			return reflect.Zero(t), nil
		}
		return initMessage(js, t)
	}
	if pt := reflect.PtrTo(t); pt.Implements(messageType) {
		if js == nil {
			if t.Kind() != reflect.Struct {
				return reflect.Zero(t), nil
			}
			js = map[string]any{}
		}
		ptr, err := initMessage(js, pt)
		if err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	if js == nil {
		return reflect.Zero(t), nil
	}
	switch t.Kind() {
	case reflect.Ptr:
		v, err := convert(js, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	case reflect.Bool:
		if b, ok := js.(bool); ok {
			return reflect.ValueOf(b), nil
		}
		return reflect.Value{}, errors.Reason("not a bool: %v", js)
	case reflect.Int:
		f, ok := js.(float64)
		if !ok || f != float64(int(f)) {
			return reflect.Value{}, errors.Reason("not an integer: %v", js)
		}
		return reflect.ValueOf(int(f)), nil
	case reflect.Float64:
		if f, ok := js.(float64); ok {
			return reflect.ValueOf(f), nil
		}
		return reflect.Value{}, errors.Reason("not a number: %v", js)
	case reflect.String:
		if s, ok := js.(string); ok {
			return reflect.ValueOf(s).Convert(t), nil
		}
		return reflect.Value{}, errors.Reason("not a string: %v", js)
	case reflect.Slice:
		list, ok := js.([]any)
		if !ok {
			return reflect.Value{}, errors.Reason("not a list: %v", js)
		}
		res := reflect.MakeSlice(t, len(list), len(list))
		for i, el := range list {
			v, err := convert(el, t.Elem())
			if err != nil {
				return reflect.Value{}, errors.Annotate(err, "element %d", i)
			}
			res.Index(i).Set(v)
		}
		return res, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return reflect.Value{}, errors.Reason("map key %s is not supported", t.Key())
		}
		m, ok := js.(map[string]any)
		if !ok {
			return reflect.Value{}, errors.Reason("not an object: %v", js)
		}
		res := reflect.MakeMapWithSize(t, len(m))
		for k, el := range m {
			v, err := convert(el, t.Elem())
			if err != nil {
				return reflect.Value{}, errors.Annotate(err, "key '%s'", k)
			}
			res.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), v)
		}
		return res, nil
	}
	return reflect.Value{}, errors.Reason("unsupported type: %s", t)
}

// parseDefault converts the value of a `default` tag to the type t.
func parseDefault(s string, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Ptr:
		v, err := parseDefault(s, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, errors.Annotate(err, "invalid bool value: %s", s)
		}
		return reflect.ValueOf(b), nil
	case reflect.Int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return reflect.Value{}, errors.Annotate(err, "invalid int value: %s", s)
		}
		return reflect.ValueOf(i), nil
	case reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return reflect.Value{}, errors.Annotate(err, "invalid float64 value: %s", s)
		}
		return reflect.ValueOf(f), nil
	case reflect.String:
		return reflect.ValueOf(s).Convert(t), nil
	}
	return reflect.Value{}, errors.Reason("default for type %s is not supported", t)
}

// jsonName of a struct field, or "" if the field is not part of the message.
func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Init populates the struct pointed to by m from the JSON object js, which
// must be a map[string]any. Recognized struct tags:
//
//	`json:"field name" required:"true" default:"value" choices:"one,two"`
//
// The json tag follows encoding/json, so that a message can be marshaled
// back into a compatible JSON. Fields implementing Message are initialized by
// their own InitMessage. Unknown keys in js are an error. The choices tag
// applies to string fields only, and is checked for the default and zero
// values as well.
func Init(m Message, js any) error {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errors.Reason("Message must be a struct pointer, got %T", m)
	}
	obj, ok := js.(map[string]any)
	if !ok {
		return errors.Reason("expected a JSON object, got %v", js)
	}
	rv = rv.Elem()
	rt := rv.Type()
	known := make(map[string]bool)
	var missing []string
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := jsonName(f)
		if name == "" {
			continue
		}
		known[name] = true
		var v reflect.Value
		var err error
		jv, found := obj[name]
		switch {
		case found:
			v, err = convert(jv, f.Type)
		case f.Tag.Get("required") == "true":
			missing = append(missing, name)
			continue
		default:
			if def, ok := f.Tag.Lookup("default"); ok {
				v, err = parseDefault(def, f.Type)
			} else {
				v, err = convert(nil, f.Type)
			}
		}
		if err != nil {
			return errors.Annotate(err, "invalid value for '%s'", name)
		}
		if choices, ok := f.Tag.Lookup("choices"); ok {
			if f.Type.Kind() != reflect.String {
				return errors.Reason("choices tag on a non-string field %s", f.Name)
			}
			if s := v.String(); !slices.Contains(strings.Split(choices, ","), s) {
				return errors.Reason("value for '%s' must be one of [%s]: '%s'",
					name, choices, s)
			}
		}
		rv.Field(i).Set(v)
	}
	if len(missing) > 0 {
		return errors.Reason("missing required fields: %s", strings.Join(missing, ", "))
	}
	var unknown []string
	for k := range obj {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return errors.Reason("unsupported fields for %s: %s",
			rt.Name(), strings.Join(unknown, ", "))
	}
	return nil
}

// FromFile reads a JSON file and initializes the message from it.
func FromFile(m Message, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotate(err, "failed to read '%s'", path)
	}
	var js any
	if err := json.Unmarshal(data, &js); err != nil {
		return errors.Annotate(err, "failed to parse JSON in '%s'", path)
	}
	if err := m.InitMessage(js); err != nil {
		return errors.Annotate(err, "failed to init message from '%s'", path)
	}
	return nil
}
