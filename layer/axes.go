// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"strconv"

	"github.com/gogpu/gg"
	"gonum.org/v1/plot"

	"github.com/gogpu/ggplot/scale"
	"github.com/gogpu/ggplot/surface"
)

// Axes draws the two axes with their ticks, labels and optional grid.
//
// An axis line passes through data zero when zero lies in the other axis's
// range and runs along the nearest viewport edge otherwise. A degenerate
// axis is not drawn at all.
type Axes struct {
	group  *surface.Group
	style  AxisStyle
	ticker plot.Ticker
}

// NewAxes returns an Axes layer drawing into g.
func NewAxes(g *surface.Group, style AxisStyle) *Axes {
	return &Axes{group: g, style: style, ticker: plot.DefaultTicks{}}
}

// Group returns the layer's group.
func (a *Axes) Group() *surface.Group { return a.group }

// Update redraws the axes for m.
func (a *Axes) Update(m scale.Mapper) {
	a.group.Clear()

	bad := m.Degenerate()
	d := m.Domain()
	v := m.Viewport()

	// Pixel position of the horizontal axis line.
	yLine := v.Height
	if !bad.Has(scale.AxisY) {
		yLine = m.Y(clamp(0, d.MinY, d.MaxY))
	}
	// Pixel position of the vertical axis line.
	xLine := 0.0
	if !bad.Has(scale.AxisX) {
		xLine = m.X(clamp(0, d.MinX, d.MaxX))
	}

	if !bad.Has(scale.AxisX) {
		a.horizontal(m, yLine)
	}
	if !bad.Has(scale.AxisY) {
		a.vertical(m, xLine)
	}
}

func (a *Axes) horizontal(m scale.Mapper, y float64) {
	d, v := m.Domain(), m.Viewport()
	s := a.style

	a.line("x-axis", gg.Pt(0, y), gg.Pt(v.Width, y), s.Color, s.Width)
	for i, t := range a.ticks(d.MinX, d.MaxX) {
		x := m.X(t.Value)
		key := "x" + strconv.Itoa(i)
		size := s.TickSize
		if t.IsMinor() {
			size /= 2
		} else {
			if s.Grid {
				a.line("grid-"+key, gg.Pt(x, 0), gg.Pt(x, v.Height), s.GridColor, s.Width)
			}
			a.group.Label("label-"+key).Set(t.Label, gg.Pt(x, y+s.TickSize/2+2),
				surface.AnchorTopCenter, surface.TextStyle{Color: s.TextColor, Size: s.FontSize})
		}
		a.line("tick-"+key, gg.Pt(x, y-size/2), gg.Pt(x, y+size/2), s.Color, s.Width)
	}
}

func (a *Axes) vertical(m scale.Mapper, x float64) {
	d, v := m.Domain(), m.Viewport()
	s := a.style

	a.line("y-axis", gg.Pt(x, 0), gg.Pt(x, v.Height), s.Color, s.Width)
	for i, t := range a.ticks(d.MinY, d.MaxY) {
		y := m.Y(t.Value)
		key := "y" + strconv.Itoa(i)
		size := s.TickSize
		if t.IsMinor() {
			size /= 2
		} else {
			if s.Grid {
				a.line("grid-"+key, gg.Pt(0, y), gg.Pt(v.Width, y), s.GridColor, s.Width)
			}
			a.group.Label("label-"+key).Set(t.Label, gg.Pt(x-s.TickSize/2-2, y),
				surface.AnchorMiddleRight, surface.TextStyle{Color: s.TextColor, Size: s.FontSize})
		}
		a.line("tick-"+key, gg.Pt(x-size/2, y), gg.Pt(x+size/2, y), s.Color, s.Width)
	}
}

// ticks returns the ticks of [lo, hi], dropping any the ticker places
// outside the interval.
func (a *Axes) ticks(lo, hi float64) []plot.Tick {
	all := a.ticker.Ticks(lo, hi)
	out := all[:0]
	for _, t := range all {
		if t.Value >= lo && t.Value <= hi {
			out = append(out, t)
		}
	}
	return out
}

func (a *Axes) line(key string, from, to gg.Point, c gg.RGBA, width float64) {
	p := a.group.Path(key)
	p.SetStroke(surface.Stroke{Color: c, Width: width})
	p.Rebuild(func(path *gg.Path) {
		path.MoveTo(from.X, from.Y)
		path.LineTo(to.X, to.Y)
	})
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
