// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "github.com/gogpu/gg"

// ElementID identifies an element for the lifetime of its surface.
// IDs are never reused.
type ElementID uint64

// Stroke describes how a path outline is drawn.
type Stroke struct {
	Color gg.RGBA
	Width float64
	Dash  []float64
}

// TextStyle describes how a label is drawn.
type TextStyle struct {
	Color gg.RGBA
	Size  float64
}

// Anchor positions a label relative to its point, as fractions of the text
// box. It follows gg.Context.DrawStringAnchored: X=0 puts the point at the
// left edge and X=1 at the right edge; Y=0 puts the point on the baseline
// and Y=1 puts it at the top of the text.
type Anchor struct {
	X, Y float64
}

// Common anchors.
var (
	AnchorTopCenter   = Anchor{X: 0.5, Y: 1}
	AnchorMiddleRight = Anchor{X: 1, Y: 0.35}
	AnchorMiddleLeft  = Anchor{X: 0, Y: 0.35}
)

// Element is a drawable item of a Group.
type Element interface {
	// ID returns the element's identity.
	ID() ElementID

	// Key returns the element's key within its group.
	Key() string

	// Revision counts the modifications of the element since creation.
	Revision() uint64

	draw(b Backend)
	element() *base
}

type base struct {
	id    ElementID
	key   string
	rev   uint64
	group *Group
}

func (e *base) ID() ElementID    { return e.id }
func (e *base) Key() string      { return e.key }
func (e *base) Revision() uint64 { return e.rev }
func (e *base) element() *base   { return e }

func (e *base) touch() {
	e.rev++
	if e.group != nil {
		e.group.touch()
	}
}

// Path is a stroked path element.
type Path struct {
	base
	stroke Stroke
	geom   *gg.Path
}

// Stroke returns the stroke style of p.
func (p *Path) Stroke() Stroke { return p.stroke }

// SetStroke replaces the stroke style of p.
func (p *Path) SetStroke(s Stroke) {
	p.stroke = s
	p.touch()
}

// Geometry returns the path geometry. The pointer is stable for the life of
// the element; callers must use Rebuild to modify it.
func (p *Path) Geometry() *gg.Path { return p.geom }

// Rebuild clears the geometry of p and lets build append new elements to
// it. The element and its geometry keep their identity.
func (p *Path) Rebuild(build func(*gg.Path)) {
	p.geom.Clear()
	if build != nil {
		build(p.geom)
	}
	p.touch()
}

// Empty reports whether p has no geometry.
func (p *Path) Empty() bool {
	return len(p.geom.Elements()) == 0
}

func (p *Path) draw(b Backend) {
	if p.Empty() || p.stroke.Width <= 0 {
		return
	}
	b.StrokePath(p.geom, p.stroke)
}

// Marker is a filled circle.
type Marker struct {
	base
	center gg.Point
	radius float64
	fill   gg.RGBA
}

// Center returns the marker position.
func (m *Marker) Center() gg.Point { return m.center }

// Radius returns the marker radius.
func (m *Marker) Radius() float64 { return m.radius }

// Fill returns the marker color.
func (m *Marker) Fill() gg.RGBA { return m.fill }

// Set moves and restyles the marker.
func (m *Marker) Set(center gg.Point, radius float64, fill gg.RGBA) {
	m.center, m.radius, m.fill = center, radius, fill
	m.touch()
}

func (m *Marker) draw(b Backend) {
	if m.radius <= 0 {
		return
	}
	b.FillCircle(m.center, m.radius, m.fill)
}

// Label is a text element.
type Label struct {
	base
	text   string
	at     gg.Point
	anchor Anchor
	style  TextStyle
}

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// At returns the label position.
func (l *Label) At() gg.Point { return l.at }

// Anchor returns the label anchor.
func (l *Label) Anchor() Anchor { return l.anchor }

// Style returns the label style.
func (l *Label) Style() TextStyle { return l.style }

// Set replaces the label content and placement.
func (l *Label) Set(text string, at gg.Point, anchor Anchor, style TextStyle) {
	l.text, l.at, l.anchor, l.style = text, at, anchor, style
	l.touch()
}

func (l *Label) draw(b Backend) {
	if l.text == "" {
		return
	}
	b.DrawText(l.text, l.at, l.anchor, l.style)
}
