// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package curve adapts evaluator output to pixel-space polylines.
//
// Sampling is a filter, not a clipper: a sample survives only when both of
// its coordinates lie inside the closed domain/range, and everything else is
// dropped. A curve that leaves the visible rectangle is therefore truncated
// at the evaluator's sample spacing; no boundary point is interpolated.
package curve

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/ggplot/eval"
	"github.com/gogpu/ggplot/scale"
)

// Scaled is a curve in pixel space, in sample order.
type Scaled struct {
	Points []gg.Point
}

// Len returns the number of points in s.
func (s Scaled) Len() int { return len(s.Points) }

// Sample filters and scales r through m. It returns ok=false when r does
// not describe a curve; scalar and empty results never produce one.
// A curve sampled through a degenerate mapper is empty.
func Sample(r eval.Result, m scale.Mapper) (Scaled, bool) {
	var pts []eval.Point
	switch c := r.(type) {
	case eval.Curve:
		pts = c.Points
	case *eval.Curve:
		if c == nil {
			return Scaled{}, false
		}
		pts = c.Points
	default:
		return Scaled{}, false
	}

	if m.Degenerate() != 0 {
		return Scaled{}, true
	}

	in := Filter(pts, m.Domain())
	out := make([]gg.Point, 0, len(in))
	for _, p := range in {
		px, py := m.ToPixel(p.X, p.Y)
		out = append(out, gg.Pt(px, py))
	}
	return Scaled{Points: out}, true
}

// Filter returns the samples of pts that lie inside d, in order.
func Filter(pts []eval.Point, d scale.Domain) []eval.Point {
	out := make([]eval.Point, 0, len(pts))
	for _, p := range pts {
		if d.Contains(p.X, p.Y) {
			out = append(out, p)
		}
	}
	return out
}
