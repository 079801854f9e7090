// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ggplot is a reactive equation plotter built on gg.
//
// # Overview
//
// A [Controller] follows an [Equations] list and a domain. Once an
// evaluator is attached it evaluates every equation through an
// [eval.Session], turns curve results into smooth paths, places markers at
// the intersections of a selected pair of equations and draws axes with
// ticks and labels. The drawing is kept in a retained [surface.Surface]
// that is updated incrementally: editing an equation never redraws the
// axes, and moving the domain re-scales the existing samples without
// calling the evaluator unless the visible X interval grows.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ggplot"
//	    "github.com/gogpu/ggplot/evaluator/exprcalc"
//	    _ "github.com/gogpu/ggplot/surface/backends/raster"
//	)
//
//	eqs := ggplot.NewEquations("y = sin(x)", "y = x/4")
//	c := ggplot.NewController(eqs, ggplot.WithGrid(true))
//	if err := c.AttachEvaluator(exprcalc.New()); err != nil {
//	    log.Fatal(err)
//	}
//	c.SelectInterceptsAt(0, 1)
//	if err := c.ExportFile("plot.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Packages
//
//   - scale: domain, viewport and the data-to-pixel mapper
//   - eval: the evaluator boundary and result types
//   - curve: sampling of curve results into pixel space
//   - layer: the axes, curves and intercepts layers
//   - surface: the retained drawing and its export backends
//   - evaluator/exprcalc: an expression evaluator
//   - config, store/sqlite: plot documents in YAML and SQLite
//
// # Logging
//
// ggplot is silent by default. Use [SetLogger] to receive diagnostics
// through log/slog.
package ggplot
