// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scale maps between plot data space and viewport pixels.
//
// A [Mapper] is a pure value: it holds a [Domain] (the visible data
// rectangle) and a [Viewport] (the pixel size of the drawing) and performs
// linear interpolation between the two. The Y axis is inverted so that
// increasing data Y maps to decreasing pixel Y, the usual screen convention.
//
//	m := scale.NewMapper(scale.Domain{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10},
//	    scale.Viewport{Width: 800, Height: 600})
//	px, py := m.ToPixel(0, 0) // (400, 300)
//
// A domain whose bounds collapse on an axis is degenerate. The mapper never
// divides by zero: it reports the degenerate axes through [Mapper.Degenerate]
// and [Mapper.Err] and yields NaN for coordinates on those axes.
package scale

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Axis is a bit set of plot axes.
type Axis uint8

// Axis values.
const (
	AxisX Axis = 1 << iota
	AxisY
)

// Has reports whether a contains every axis in b.
func (a Axis) Has(b Axis) bool {
	return b != 0 && a&b == b
}

// String returns a human-readable list of the axes in a.
func (a Axis) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	if a.Has(AxisX) {
		parts = append(parts, "x")
	}
	if a.Has(AxisY) {
		parts = append(parts, "y")
	}
	return strings.Join(parts, ",")
}

// ErrDegenerateDomain is matched by every *DegenerateDomainError.
var ErrDegenerateDomain = errors.New("scale: degenerate domain")

// DegenerateDomainError describes which axes of a mapping cannot be scaled.
type DegenerateDomainError struct {
	Axes     Axis
	Domain   Domain
	Viewport Viewport
}

func (e *DegenerateDomainError) Error() string {
	return fmt.Sprintf("scale: degenerate domain on %s axis (domain %v, viewport %v)",
		e.Axes, e.Domain, e.Viewport)
}

// Unwrap returns ErrDegenerateDomain.
func (e *DegenerateDomainError) Unwrap() error {
	return ErrDegenerateDomain
}

// Domain is the visible rectangle of data space.
type Domain struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultDomain is the square [-10, 10] x [-10, 10].
var DefaultDomain = Domain{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}

// Contains reports whether (x, y) lies in the closed rectangle d.
// NaN coordinates are never contained.
func (d Domain) Contains(x, y float64) bool {
	return x >= d.MinX && x <= d.MaxX && y >= d.MinY && y <= d.MaxY
}

// CoversX reports whether the closed interval [minX, maxX] lies inside the
// X extent of d.
func (d Domain) CoversX(minX, maxX float64) bool {
	return minX >= d.MinX && maxX <= d.MaxX
}

// Width returns the X extent of d.
func (d Domain) Width() float64 { return d.MaxX - d.MinX }

// Height returns the Y extent of d.
func (d Domain) Height() float64 { return d.MaxY - d.MinY }

// Degenerate returns the axes on which d cannot be scaled: bounds that are
// not finite or where max <= min.
func (d Domain) Degenerate() Axis {
	var a Axis
	if !validInterval(d.MinX, d.MaxX) {
		a |= AxisX
	}
	if !validInterval(d.MinY, d.MaxY) {
		a |= AxisY
	}
	return a
}

// Validate returns a *DegenerateDomainError when d is degenerate on any axis.
func (d Domain) Validate() error {
	if a := d.Degenerate(); a != 0 {
		return &DegenerateDomainError{Axes: a, Domain: d}
	}
	return nil
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", d.MinX, d.MaxX, d.MinY, d.MaxY)
}

// Viewport is the pixel size of the drawing surface.
type Viewport struct {
	Width, Height float64
}

// DefaultViewport is an 800x600 pixel surface.
var DefaultViewport = Viewport{Width: 800, Height: 600}

// Degenerate returns the axes with a non-positive or non-finite size.
func (v Viewport) Degenerate() Axis {
	var a Axis
	if !validInterval(0, v.Width) {
		a |= AxisX
	}
	if !validInterval(0, v.Height) {
		a |= AxisY
	}
	return a
}

func (v Viewport) String() string {
	return fmt.Sprintf("%gx%g", v.Width, v.Height)
}

func validInterval(lo, hi float64) bool {
	return !math.IsNaN(lo) && !math.IsNaN(hi) &&
		!math.IsInf(lo, 0) && !math.IsInf(hi, 0) && hi > lo
}
