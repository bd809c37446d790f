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
	"io"
	"os"
	"path/filepath"

	"github.com/stockparfait/bea/bea"
	"github.com/stockparfait/bea/config"
	"github.com/stockparfait/bea/stats"
	"github.com/stockparfait/bea/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
)

type Flags struct {
	ConfDir  string // default: ~/.bea
	Conf     string // required
	LogLevel logging.Level
	CSV      bool   // dump CSV format; default: text
	XLSX     string // write a spreadsheet to this file instead of printing
	Summary  bool   // print per-series statistics instead of the data
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("bea-fetch", flag.ExitOnError)
	fs.StringVar(&flags.ConfDir, "cache",
		filepath.Join(os.Getenv("HOME"), ".bea"),
		"directory with config.toml or .env containing the API key")
	fs.StringVar(&flags.Conf, "conf", "", "request config file (required)")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")
	fs.StringVar(&flags.XLSX, "xlsx", "", "write the table to this XLSX file")
	fs.BoolVar(&flags.Summary, "summary", false, "print summary statistics per series")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if flags.Conf == "" {
		return nil, errors.Reason("missing required -conf argument")
	}
	if flags.CSV && flags.XLSX != "" {
		return nil, errors.Reason("-csv and -xlsx are mutually exclusive")
	}
	return &flags, err
}

// sheetName is the spreadsheet tab name for the request.
func sheetName(r *bea.Request) string {
	switch {
	case r.TableID != "":
		return r.TableID
	case r.KeyCode != "":
		return r.KeyCode
	}
	return r.Dataset
}

func writeXLSX(tbl *table.Table, sheet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotate(err, "failed to create %s", path)
	}
	if err := tbl.WriteXLSX(f, sheet, table.Params{}); err != nil {
		f.Close()
		return errors.Annotate(err, "failed to write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Annotate(err, "failed to close %s", path)
	}
	return nil
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	var req bea.Request
	if err := config.FromFile(&req, flags.Conf); err != nil {
		return errors.Annotate(err, "failed to load request from %s", flags.Conf)
	}
	key, err := config.LoadKey(flags.ConfDir)
	if err != nil {
		return errors.Annotate(err, "failed to load API key")
	}
	ctx = bea.UseClient(ctx, key)
	f, err := req.Fetch(ctx)
	if err != nil {
		return errors.Annotate(err, "failed to fetch %s data", req.Dataset)
	}
	if n := f.Missing(); n > 0 {
		logging.Infof(ctx, "%d of %d cells are missing", n, f.NumRows()*f.NumColumns())
	}

	var tbl *table.Table
	switch {
	case flags.Summary:
		summaries, err := stats.SummarizeFrame(f)
		if err != nil {
			return errors.Annotate(err, "failed to summarize")
		}
		tbl = stats.SummaryTable(summaries)
	case flags.CSV || flags.XLSX != "":
		tbl = f.Table("")
	default:
		tbl = f.Table("n/a")
	}

	if flags.XLSX != "" {
		if err := writeXLSX(tbl, sheetName(&req), flags.XLSX); err != nil {
			return errors.Annotate(err, "failed to save spreadsheet")
		}
		logging.Infof(ctx, "saved %d rows to %s", len(tbl.Rows), flags.XLSX)
		return nil
	}
	if flags.CSV {
		if err := tbl.WriteCSV(w, table.Params{}); err != nil {
			return errors.Annotate(err, "failed to print CSV")
		}
		return nil
	}
	if err := tbl.WriteText(w, table.Params{}); err != nil {
		return errors.Annotate(err, "failed to print text")
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
