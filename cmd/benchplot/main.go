// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot charts CSV benchmark results.
//
// Usage:
//
//	benchplot [flags] results.csv
//
// Benchplot loads results.csv, plots each -series column against the
// -x column, and serves the chart as a local web page. It exits when
// the chart is dismissed from that page.
//
// The columns Threads, Hashpower, and Insert Percentage are read as
// integers, with Hashpower values converted from an exponent to a
// power of two. The columns libcuckoo and tbb are read as
// floating-point numbers. All other columns are text.
//
// With -print, benchplot prints the loaded table instead of charting
// it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/efficient/benchplot/benchchart"
	"github.com/efficient/benchplot/benchcsv"
	"gonum.org/v1/plot/vg"
)

func main() {
	log.SetPrefix("benchplot: ")
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := benchplot(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err != errUsage {
			log.Print(err)
		}
		stop()
		os.Exit(2)
	}
}

var legendNames = map[string]benchchart.Legend{
	"upper-left": benchchart.LegendUpperLeft,
	"best":       benchchart.LegendBest,
}

// errUsage is returned for command-line mistakes; the usage message
// has already been printed.
var errUsage = errors.New("usage error")

func benchplot(ctx context.Context, w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("benchplot", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: benchplot [flags] results.csv\n")
		flags.PrintDefaults()
	}
	var (
		flagTitle  = flags.String("title", "", "chart `title`")
		flagX      = flags.String("x", "Threads", "x-axis `column`")
		flagYLabel = flags.String("ylabel", "Throughput (millions of reqs per sec)", "y-axis `label`")
		flagSeries = flags.String("series", "libcuckoo,tbb", "comma-separated series `columns`")
		flagLogX   = flags.Bool("logx", false, "use a base 2 logarithmic x axis")
		flagLegend = flags.String("legend", "upper-left", "legend `placement`: upper-left or best")
		flagAddr   = flags.String("addr", "localhost:0", "serve the chart on `address`")
		flagWidth  = flags.Float64("width", 16, "chart width in `cm`")
		flagHeight = flags.Float64("height", 12, "chart height in `cm`")
		flagPrint  = flags.Bool("print", false, "print the loaded table instead of charting it")
	)
	if err := flags.Parse(args); err != nil {
		// flags has reported the problem.
		return errUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errUsage
	}
	legend, ok := legendNames[*flagLegend]
	if !ok {
		fmt.Fprintf(wErr, "unknown -legend %q\n", *flagLegend)
		flags.Usage()
		return errUsage
	}

	tab, err := benchcsv.Load(flags.Arg(0))
	if err != nil {
		return err
	}
	if *flagPrint {
		return table.Fprint(w, tab)
	}

	opts := benchchart.Options{
		Title:  *flagTitle,
		X:      *flagX,
		YLabel: *flagYLabel,
		Series: strings.Split(*flagSeries, ","),
		LogX:   *flagLogX,
		Legend: legend,
	}
	v := &benchchart.Viewer{
		Addr:   *flagAddr,
		Width:  vg.Length(*flagWidth) * vg.Centimeter,
		Height: vg.Length(*flagHeight) * vg.Centimeter,
		Notify: func(url string) {
			fmt.Fprintf(wErr, "chart at %s; dismiss it there to exit\n", url)
		},
	}
	return benchchart.RenderTo(ctx, tab, opts, v)
}
