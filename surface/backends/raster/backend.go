// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides a PNG backend for plot surfaces.
// It renders surfaces to pixel images using gg.Context.
//
// Labels are drawn with the Go Regular font from golang.org/x/image.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/ggplot/surface/backends/raster"
//
//	// Create via registry
//	backend, _ := surface.NewBackend("png")
//
//	// Or create directly
//	backend := raster.NewBackend()
//
//	s.Playback(backend)
//	backend.SaveToFile("plot.png")
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ggplot/surface"
)

func init() {
	factory := func() surface.Backend { return NewBackend() }
	surface.Register("raster", factory)
	surface.Register("png", factory)
}

// ErrNotRendered is returned by output methods called before End.
var ErrNotRendered = errors.New("raster: nothing rendered")

// Backend renders surfaces to a pixel image using gg.Context.
type Backend struct {
	ctx    *gg.Context
	width  int
	height int
	faces  map[float64]text.Face
	errs   []error
	done   bool
}

var (
	_ surface.Backend       = (*Backend)(nil)
	_ surface.WriterBackend = (*Backend)(nil)
	_ surface.FileBackend   = (*Backend)(nil)
	_ surface.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin allocates a canvas of the given size, rounded up to whole pixels.
func (b *Backend) Begin(width, height float64) error {
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("raster: invalid canvas size %gx%g", width, height)
	}
	var closeErr error
	if b.ctx != nil {
		closeErr = b.ctx.Close()
	}
	b.width, b.height = w, h
	b.ctx = gg.NewContext(w, h)
	b.errs = nil
	b.done = false
	// A failure to release the previous canvas surfaces from End.
	if closeErr != nil {
		b.record(fmt.Errorf("raster: close previous canvas: %w", closeErr))
	}
	return nil
}

// End finalizes the rendering and reports the first drawing failures.
func (b *Backend) End() error {
	b.done = true
	return errors.Join(b.errs...)
}

// Clear fills the canvas with c.
func (b *Backend) Clear(c gg.RGBA) {
	b.ctx.ClearWithColor(c)
}

// StrokePath strokes the given path.
func (b *Backend) StrokePath(path *gg.Path, stroke surface.Stroke) {
	if path == nil {
		return
	}
	b.ctx.ClearPath()
	b.setPathFromElements(path)
	b.ctx.SetColor(stroke.Color.Color())
	b.ctx.SetLineWidth(stroke.Width)
	b.ctx.SetLineCap(gg.LineCapRound)
	b.ctx.SetLineJoin(gg.LineJoinRound)
	if len(stroke.Dash) > 0 {
		b.ctx.SetDash(stroke.Dash...)
	} else {
		b.ctx.ClearDash()
	}
	b.record(b.ctx.Stroke())
}

// FillCircle fills a circle.
func (b *Backend) FillCircle(center gg.Point, radius float64, fill gg.RGBA) {
	b.ctx.ClearPath()
	b.ctx.DrawCircle(center.X, center.Y, radius)
	b.ctx.SetColor(fill.Color())
	b.record(b.ctx.Fill())
}

// DrawText draws s anchored at the given point.
func (b *Backend) DrawText(s string, at gg.Point, anchor surface.Anchor, style surface.TextStyle) {
	face, err := b.face(style.Size)
	if err != nil {
		b.record(err)
		return
	}
	b.ctx.SetFont(face)
	b.ctx.SetColor(style.Color.Color())
	b.ctx.DrawStringAnchored(s, at.X, at.Y, anchor.X, anchor.Y)
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, ErrNotRendered
	}
	cw := &countingWriter{w: w}
	err := b.ctx.EncodePNG(cw)
	return cw.n, err
}

// SaveToFile saves the rendered content as PNG to a file.
func (b *Backend) SaveToFile(path string) error {
	if !b.done {
		return ErrNotRendered
	}
	return b.ctx.SavePNG(path)
}

// Image returns the rendered image, or nil before End.
func (b *Backend) Image() image.Image {
	if !b.done {
		return nil
	}
	return b.ctx.Image()
}

// Size returns the canvas size in pixels.
func (b *Backend) Size() (width, height int) {
	return b.width, b.height
}

func (b *Backend) record(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

func (b *Backend) face(size float64) (text.Face, error) {
	if size <= 0 {
		size = 12
	}
	if f, ok := b.faces[size]; ok {
		return f, nil
	}
	src, err := goRegular()
	if err != nil {
		return nil, err
	}
	if b.faces == nil {
		b.faces = make(map[float64]text.Face)
	}
	f := src.Face(size)
	b.faces[size] = f
	return f, nil
}

var goRegular = sync.OnceValues(func() (*text.FontSource, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load Go Regular: %w", err)
	}
	return src, nil
})

// setPathFromElements walks path elements and adds them to the context.
func (b *Backend) setPathFromElements(path *gg.Path) {
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			b.ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			b.ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			b.ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			b.ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			b.ctx.ClosePath()
		}
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
