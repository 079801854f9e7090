// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scale

import "math"

// Mapper is a linear transform between a Domain and a Viewport.
// The zero value is degenerate on both axes.
//
// Mapper is a comparable value type; two mappers are equal when their
// domains and viewports are equal.
type Mapper struct {
	domain   Domain
	viewport Viewport
}

// NewMapper returns the mapper from d onto v.
func NewMapper(d Domain, v Viewport) Mapper {
	return Mapper{domain: d, viewport: v}
}

// Domain returns the data rectangle of m.
func (m Mapper) Domain() Domain { return m.domain }

// Viewport returns the pixel size of m.
func (m Mapper) Viewport() Viewport { return m.viewport }

// Degenerate returns the axes that cannot be mapped.
func (m Mapper) Degenerate() Axis {
	return m.domain.Degenerate() | m.viewport.Degenerate()
}

// Err returns a *DegenerateDomainError if any axis of m is degenerate.
func (m Mapper) Err() error {
	if a := m.Degenerate(); a != 0 {
		return &DegenerateDomainError{Axes: a, Domain: m.domain, Viewport: m.viewport}
	}
	return nil
}

// X maps a data X coordinate to a pixel column.
func (m Mapper) X(x float64) float64 {
	if m.Degenerate().Has(AxisX) {
		return math.NaN()
	}
	return (x - m.domain.MinX) / (m.domain.MaxX - m.domain.MinX) * m.viewport.Width
}

// Y maps a data Y coordinate to a pixel row. Larger Y values map to
// smaller rows.
func (m Mapper) Y(y float64) float64 {
	if m.Degenerate().Has(AxisY) {
		return math.NaN()
	}
	h := m.viewport.Height
	return h - (y-m.domain.MinY)/(m.domain.MaxY-m.domain.MinY)*h
}

// ToPixel maps the data point (x, y) to pixel space.
func (m Mapper) ToPixel(x, y float64) (px, py float64) {
	return m.X(x), m.Y(y)
}

// ToData maps the pixel (px, py) back to data space. It is the inverse of
// ToPixel on non-degenerate axes.
func (m Mapper) ToData(px, py float64) (x, y float64) {
	deg := m.Degenerate()
	x, y = math.NaN(), math.NaN()
	if !deg.Has(AxisX) {
		x = m.domain.MinX + px/m.viewport.Width*(m.domain.MaxX-m.domain.MinX)
	}
	if !deg.Has(AxisY) {
		h := m.viewport.Height
		y = m.domain.MinY + (h-py)/h*(m.domain.MaxY-m.domain.MinY)
	}
	return x, y
}
