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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/stockparfait/bea/bea"
	"github.com/stockparfait/bea/config"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
)

type Flags struct {
	ConfDir  string // default: ~/.bea
	LogLevel logging.Level
	// Exactly one of datasets, parameters or values must be present.
	Datasets   bool
	Parameters string // dataset to list parameters of
	Values     string // dataset to list parameter values of
	Param      string // parameter name, required with -values
	Names      bool   // print only the names, one per line
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("bea-list", flag.ExitOnError)
	fs.StringVar(&flags.ConfDir, "cache",
		filepath.Join(os.Getenv("HOME"), ".bea"),
		"directory with config.toml or .env containing the API key")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.Datasets, "datasets", false, "list the available datasets")
	fs.StringVar(&flags.Parameters, "parameters", "", "dataset to list parameters of")
	fs.StringVar(&flags.Values, "values", "", "dataset to list parameter values of")
	fs.StringVar(&flags.Param, "param", "", "parameter to list values of, with -values")
	fs.BoolVar(&flags.Names, "names", false, "print only the names; default: full report")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	kinds := 0
	if flags.Datasets {
		kinds++
	}
	if flags.Parameters != "" {
		kinds++
	}
	if flags.Values != "" {
		kinds++
	}
	if kinds != 1 {
		return nil, errors.Reason(
			"expected exactly one of -datasets, -parameters or -values")
	}
	if flags.Values != "" && flags.Param == "" {
		return nil, errors.Reason("-values requires -param")
	}
	return &flags, err
}

// listing is the common interface of the metadata results.
type listing interface {
	Names() []string
	Report() string
}

func fetchListing(ctx context.Context, flags *Flags) (listing, error) {
	switch {
	case flags.Datasets:
		return bea.FetchDatasets(ctx)
	case flags.Parameters != "":
		return bea.FetchParameters(ctx, flags.Parameters)
	default:
		return bea.FetchParameterValues(ctx, flags.Values, flags.Param)
	}
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	key, err := config.LoadKey(flags.ConfDir)
	if err != nil {
		return errors.Annotate(err, "failed to load API key")
	}
	ctx = bea.UseClient(ctx, key)
	l, err := fetchListing(ctx, flags)
	if err != nil {
		return errors.Annotate(err, "failed to fetch the listing")
	}
	if flags.Names {
		for _, n := range l.Names() {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return errors.Annotate(err, "failed to print names")
			}
		}
		return nil
	}
	if _, err := io.WriteString(w, l.Report()); err != nil {
		return errors.Annotate(err, "failed to print the report")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printData(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
