// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer renders plot content into surface groups.
//
// Each layer owns one group of a surface and is a pure function of its
// inputs: Curves of the scaled curves, Axes of the mapper, Intercepts of the
// intercept points and the mapper. A layer never reads another layer's
// group, so the controller can update them independently.
package layer

import "github.com/gogpu/gg"

// DefaultPalette is the curve palette, indexed by equation position.
var DefaultPalette = []gg.RGBA{
	gg.Hex("#c74440"),
	gg.Hex("#2d70b3"),
	gg.Hex("#388c46"),
	gg.Hex("#6042a6"),
	gg.Hex("#fa7e19"),
	gg.Hex("#000000"),
}

// CurveStyle configures the Curves layer.
type CurveStyle struct {
	// Width is the stroke width in pixels.
	Width float64

	// Tension of the cardinal spline: 0 is Catmull-Rom, 1 is a polyline.
	Tension float64

	// Palette is cycled by equation position. Empty means DefaultPalette.
	Palette []gg.RGBA
}

// DefaultCurveStyle returns the default curve style.
func DefaultCurveStyle() CurveStyle {
	return CurveStyle{Width: 2.5}
}

// Color returns the palette color for the equation at index i.
func (s CurveStyle) Color(i int) gg.RGBA {
	p := s.Palette
	if len(p) == 0 {
		p = DefaultPalette
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// AxisStyle configures the Axes layer.
type AxisStyle struct {
	Color     gg.RGBA
	Width     float64
	TickSize  float64
	FontSize  float64
	TextColor gg.RGBA

	// Grid draws a line across the plot at every major tick.
	Grid      bool
	GridColor gg.RGBA
}

// DefaultAxisStyle returns the default axis style.
func DefaultAxisStyle() AxisStyle {
	return AxisStyle{
		Color:     gg.Hex("#333333"),
		Width:     1,
		TickSize:  6,
		FontSize:  11,
		TextColor: gg.Hex("#333333"),
		GridColor: gg.Hex("#e6e6e6"),
	}
}

// MarkerStyle configures the Intercepts layer.
type MarkerStyle struct {
	Radius float64
	Fill   gg.RGBA
}

// DefaultMarkerStyle returns the default intercept marker style.
func DefaultMarkerStyle() MarkerStyle {
	return MarkerStyle{Radius: 4, Fill: gg.Hex("#555555")}
}
