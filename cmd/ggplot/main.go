// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command ggplot plots equations to an image or vector file.
//
// Usage:
//
//	ggplot -eq 'y = sin(x)' -eq 'y = x/4' -intercepts 0,1 -o waves.png
//	ggplot -config plot.yaml -o plot.svg
//	ggplot -db plots.db -load waves -o waves.pdf
//	ggplot -db plots.db -list
//
// The output format follows the file extension: png, svg, pdf or eps.
// Scalar equations such as "a = 1 + 2" are printed to standard output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/config"
	"github.com/gogpu/ggplot/eval"
	"github.com/gogpu/ggplot/evaluator/exprcalc"
	"github.com/gogpu/ggplot/store/sqlite"

	_ "github.com/gogpu/ggplot/surface/backends/raster"
	_ "github.com/gogpu/ggplot/surface/backends/vector"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "ggplot:", err)
		os.Exit(1)
	}
}

// equationList collects repeated -eq flags.
type equationList []string

func (l *equationList) String() string { return strings.Join(*l, "; ") }

func (l *equationList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ggplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		eqs        equationList
		configPath = fs.String("config", "", "plot document (YAML)")
		output     = fs.String("o", "plot.png", "output file (.png, .svg, .pdf or .eps)")
		domain     = fs.String("domain", "", "visible domain as minX,maxX,minY,maxY")
		size       = fs.String("size", "", "output size as WIDTHxHEIGHT")
		intercepts = fs.String("intercepts", "", "mark the intersections of equations i,j")
		samples    = fs.Int("samples", 0, "samples per curve")
		grid       = fs.Bool("grid", false, "draw grid lines")
		dbPath     = fs.String("db", "", "SQLite document store")
		load       = fs.String("load", "", "load the named document from -db")
		save       = fs.String("save", "", "save the document to -db under this name")
		list       = fs.Bool("list", false, "list the documents in -db and exit")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	fs.Var(&eqs, "eq", "equation (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	ggplot.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer ggplot.SetLogger(nil)

	var store *sqlite.Store
	if *dbPath != "" {
		s, err := sqlite.Open(*dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	} else if *load != "" || *save != "" || *list {
		return errors.New("-load, -save and -list need -db")
	}

	if *list {
		docs, err := store.List(ctx)
		if err != nil {
			return err
		}
		for _, d := range docs {
			fmt.Fprintf(stdout, "%s\t%d equations\t%s\n", d.Name, d.Equations, d.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	doc := config.Default()
	switch {
	case *load != "":
		d, err := store.Load(ctx, *load)
		if err != nil {
			return err
		}
		doc = d
	case *configPath != "":
		d, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		doc = d
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(eqs) > 0 {
		doc.Equations = eqs
	}
	if *domain != "" {
		v, err := parseFloats(*domain, ",", 4)
		if err != nil {
			return fmt.Errorf("-domain: %w", err)
		}
		doc.Domain = config.Domain{MinX: v[0], MaxX: v[1], MinY: v[2], MaxY: v[3]}
	}
	if *size != "" {
		v, err := parseFloats(*size, "x", 2)
		if err != nil {
			return fmt.Errorf("-size: %w", err)
		}
		doc.Viewport = config.Viewport{Width: v[0], Height: v[1]}
	}
	if *intercepts != "" {
		v, err := parseInts(*intercepts, ",", 2)
		if err != nil {
			return fmt.Errorf("-intercepts: %w", err)
		}
		doc.Intercepts = v
	}
	if set["samples"] {
		doc.Samples = *samples
	}
	if set["grid"] {
		doc.Style.Grid = *grid
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	c := doc.NewController()
	defer c.Close()
	if err := c.AttachEvaluator(exprcalc.New(exprcalc.WithSamples(doc.Samples))); err != nil {
		return err
	}

	for i, r := range c.Results() {
		switch {
		case r.Err != nil:
			fmt.Fprintf(stdout, "%d: %s: %v\n", i, r.Text, r.Err)
		case r.Kind == eval.KindScalar:
			fmt.Fprintf(stdout, "%d: %s\n", i, r.Display)
		}
	}
	for _, p := range c.Intercepts() {
		fmt.Fprintf(stdout, "intercept: (%g, %g)\n", p.X, p.Y)
	}

	if err := c.ExportFile(*output); err != nil {
		return err
	}
	ggplot.Logger().Info("plot written", "path", *output)

	if *save != "" {
		doc.Name = *save
		if err := store.Save(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func parseFloats(s, sep string, n int) ([]float64, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values separated by %q, got %q", n, sep, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(s, sep string, n int) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values separated by %q, got %q", n, sep, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
