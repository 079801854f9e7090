// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package spline converts sampled points into smooth cubic Bézier paths.
package spline

import "github.com/gogpu/gg"

// Cardinal appends a cardinal spline through pts to p.
//
// Tension 0 gives a Catmull-Rom spline and tension 1 gives straight
// segments. The spline passes through every point and starts and ends
// exactly at the first and last point: the end tangents are computed by
// repeating the end points, so nothing is extrapolated past them.
//
// Fewer than two points append nothing.
func Cardinal(p *gg.Path, pts []gg.Point, tension float64) {
	n := len(pts)
	if n < 2 {
		return
	}
	k := (1 - tension) / 6

	p.MoveTo(pts[0].X, pts[0].Y)
	for i := 0; i < n-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, n-1)]

		c1 := p1.Add(p2.Sub(p0).Mul(k))
		c2 := p2.Sub(p3.Sub(p1).Mul(k))
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
	}
}

// OnCurve returns the end points of the path's drawing commands in order:
// the point of every MoveTo, LineTo, QuadTo and CubicTo element.
func OnCurve(p *gg.Path) []gg.Point {
	if p == nil {
		return nil
	}
	var out []gg.Point
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			out = append(out, e.Point)
		case gg.LineTo:
			out = append(out, e.Point)
		case gg.QuadTo:
			out = append(out, e.Point)
		case gg.CubicTo:
			out = append(out, e.Point)
		}
	}
	return out
}
