// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"io"

	"github.com/gogpu/gg"
)

// Backend is the interface that export backends implement.
// A backend receives the elements of a surface during Playback and
// translates them to its output format (raster pixels, SVG elements, PDF
// content streams).
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions:
//
//	func init() {
//	    surface.Register("svg", func() surface.Backend {
//	        return New(FormatSVG)
//	    })
//	}
//
// Drawing methods do not return errors. A backend that fails while drawing
// records the failure and reports it from End.
type Backend interface {
	// Begin initializes the backend for a drawing of the given size in
	// pixels. It must be called before any drawing operation.
	Begin(width, height float64) error

	// End finalizes the drawing. After End, output methods (WriteTo,
	// SaveToFile) can be used.
	End() error

	// Clear fills the whole drawing with c.
	Clear(c gg.RGBA)

	// StrokePath strokes path with the given style.
	StrokePath(path *gg.Path, stroke Stroke)

	// FillCircle fills a circle.
	FillCircle(center gg.Point, radius float64, fill gg.RGBA)

	// DrawText draws s anchored at the given point.
	DrawText(s string, at gg.Point, anchor Anchor, style TextStyle)
}

// WriterBackend extends Backend with the ability to write output to an
// io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to w. It must be called after End.
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to path. It must be called
	// after End.
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to rasterized pixels.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before End.
	Image() image.Image
}
