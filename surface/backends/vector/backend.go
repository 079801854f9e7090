// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vector provides SVG, PDF and EPS backends for plot surfaces
// on top of gonum.org/v1/plot/vg.
//
// One surface pixel maps to one point (1/72 inch). Labels use the
// Liberation Sans font.
//
//	import _ "github.com/gogpu/ggplot/surface/backends/vector"
//
//	backend, _ := surface.NewBackend("svg")
//	s.Playback(backend)
//	backend.(surface.WriterBackend).WriteTo(w)
package vector

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gogpu/gg"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/gogpu/ggplot/surface"
)

// Format selects the output document format.
type Format int

const (
	FormatSVG Format = iota
	FormatPDF
	FormatEPS
)

// String returns the lowercase file extension of the format.
func (f Format) String() string {
	switch f {
	case FormatSVG:
		return "svg"
	case FormatPDF:
		return "pdf"
	case FormatEPS:
		return "eps"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func init() {
	for _, f := range []Format{FormatSVG, FormatPDF, FormatEPS} {
		surface.Register(f.String(), func() surface.Backend { return New(f) })
	}
}

// ErrNotRendered is returned by output methods called before End.
var ErrNotRendered = errors.New("vector: nothing rendered")

var fonts = font.NewCache(liberation.Collection())

var labelFont = font.Font{Typeface: "Liberation", Variant: "Sans"}

// Backend draws a surface onto a gonum vg canvas.
type Backend struct {
	format Format
	canvas vg.CanvasWriterTo
	width  vg.Length
	height vg.Length
	done   bool
}

var (
	_ surface.Backend       = (*Backend)(nil)
	_ surface.WriterBackend = (*Backend)(nil)
	_ surface.FileBackend   = (*Backend)(nil)
)

// New creates a backend producing documents in format f.
func New(f Format) *Backend {
	return &Backend{format: f}
}

// Format returns the output format.
func (b *Backend) Format() Format { return b.format }

// Begin creates a canvas of the given size.
func (b *Backend) Begin(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("vector: invalid canvas size %gx%g", width, height)
	}
	w, h := vg.Points(width), vg.Points(height)
	switch b.format {
	case FormatSVG:
		b.canvas = vgsvg.New(w, h)
	case FormatPDF:
		b.canvas = vgpdf.New(w, h)
	case FormatEPS:
		b.canvas = vgeps.New(w, h)
	default:
		return fmt.Errorf("vector: unsupported format %v", b.format)
	}
	b.width, b.height = w, h
	b.done = false
	return nil
}

// End finalizes the drawing.
func (b *Backend) End() error {
	b.done = true
	return nil
}

// Clear fills the whole canvas with c.
func (b *Backend) Clear(c gg.RGBA) {
	var p vg.Path
	p.Move(vg.Point{})
	p.Line(vg.Point{X: b.width})
	p.Line(vg.Point{X: b.width, Y: b.height})
	p.Line(vg.Point{Y: b.height})
	p.Close()
	b.canvas.SetColor(c.Color())
	b.canvas.Fill(p)
}

// StrokePath strokes path with the given style.
func (b *Backend) StrokePath(path *gg.Path, stroke surface.Stroke) {
	if path == nil {
		return
	}
	var p vg.Path
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			p.Move(b.pt(e.Point))
		case gg.LineTo:
			p.Line(b.pt(e.Point))
		case gg.QuadTo:
			p.QuadTo(b.pt(e.Control), b.pt(e.Point))
		case gg.CubicTo:
			p.CubeTo(b.pt(e.Control1), b.pt(e.Control2), b.pt(e.Point))
		case gg.Close:
			p.Close()
		}
	}
	dash := make([]vg.Length, len(stroke.Dash))
	for i, d := range stroke.Dash {
		dash[i] = vg.Points(d)
	}
	b.canvas.SetColor(stroke.Color.Color())
	b.canvas.SetLineWidth(vg.Points(stroke.Width))
	b.canvas.SetLineDash(dash, 0)
	b.canvas.Stroke(p)
}

// FillCircle fills a circle.
func (b *Backend) FillCircle(center gg.Point, radius float64, fill gg.RGBA) {
	c := b.pt(center)
	r := vg.Points(radius)
	var p vg.Path
	p.Move(vg.Point{X: c.X + r, Y: c.Y})
	p.Arc(c, r, 0, 2*math.Pi)
	p.Close()
	b.canvas.SetColor(fill.Color())
	b.canvas.Fill(p)
}

// DrawText draws s anchored at the given point, following the anchor
// convention of gg.Context.DrawStringAnchored.
func (b *Backend) DrawText(s string, at gg.Point, anchor surface.Anchor, style surface.TextStyle) {
	size := style.Size
	if size <= 0 {
		size = 12
	}
	face := fonts.Lookup(labelFont, vg.Points(size))
	w := float64(face.Width(s))
	h := float64(face.Extents().Height)

	x := at.X - w*anchor.X
	y := at.Y + h*anchor.Y
	b.canvas.SetColor(style.Color.Color())
	b.canvas.FillString(face, b.pt(gg.Pt(x, y)), s)
}

// WriteTo writes the document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, ErrNotRendered
	}
	return b.canvas.WriteTo(w)
}

// SaveToFile writes the document to a file.
func (b *Backend) SaveToFile(path string) (err error) {
	if !b.done {
		return ErrNotRendered
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = b.canvas.WriteTo(f)
	return err
}

// pt converts a surface point to canvas coordinates, whose origin is the
// bottom-left corner.
func (b *Backend) pt(p gg.Point) vg.Point {
	return vg.Point{X: vg.Points(p.X), Y: b.height - vg.Points(p.Y)}
}
