// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggplot

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/ggplot/layer"
	"github.com/gogpu/ggplot/scale"
)

// Option configures a Controller during creation.
//
// Example:
//
//	c := ggplot.NewController(eqs,
//	    ggplot.WithViewport(scale.Viewport{Width: 400, Height: 400}),
//	    ggplot.WithDomain(scale.Domain{MinX: -5, MaxX: 5, MinY: -5, MaxY: 5}),
//	    ggplot.WithGrid(true),
//	)
type Option func(*options)

// options holds optional configuration for Controller creation.
type options struct {
	viewport   scale.Viewport
	domain     scale.Domain
	curve      layer.CurveStyle
	axis       layer.AxisStyle
	marker     layer.MarkerStyle
	background gg.RGBA
}

func defaultOptions() options {
	return options{
		viewport:   scale.DefaultViewport,
		domain:     scale.DefaultDomain,
		curve:      layer.DefaultCurveStyle(),
		axis:       layer.DefaultAxisStyle(),
		marker:     layer.DefaultMarkerStyle(),
		background: gg.White,
	}
}

// WithViewport sets the surface size in pixels.
func WithViewport(v scale.Viewport) Option {
	return func(o *options) {
		o.viewport = v
	}
}

// WithDomain sets the initial domain and range.
func WithDomain(d scale.Domain) Option {
	return func(o *options) {
		o.domain = d
	}
}

// WithTension sets the curve spline tension: 0 gives a Catmull-Rom spline,
// 1 straight segments between samples.
func WithTension(t float64) Option {
	return func(o *options) {
		o.curve.Tension = t
	}
}

// WithPalette sets the curve colors, cycled by equation position.
func WithPalette(colors ...gg.RGBA) Option {
	return func(o *options) {
		o.curve.Palette = colors
	}
}

// WithLineWidth sets the curve stroke width in pixels.
func WithLineWidth(w float64) Option {
	return func(o *options) {
		o.curve.Width = w
	}
}

// WithAxisStyle replaces the axis style.
func WithAxisStyle(s layer.AxisStyle) Option {
	return func(o *options) {
		o.axis = s
	}
}

// WithGrid turns grid lines at major ticks on or off.
func WithGrid(on bool) Option {
	return func(o *options) {
		o.axis.Grid = on
	}
}

// WithMarkerRadius sets the radius of intercept markers.
func WithMarkerRadius(r float64) Option {
	return func(o *options) {
		o.marker.Radius = r
	}
}

// WithBackground sets the surface background color.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}
