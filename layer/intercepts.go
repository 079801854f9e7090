// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"strconv"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggplot/eval"
	"github.com/gogpu/ggplot/scale"
	"github.com/gogpu/ggplot/surface"
)

// Intercepts draws one marker per intersection point.
//
// Points are not filtered against the domain: an intersection outside the
// visible window is still placed at its scaled position.
type Intercepts struct {
	group *surface.Group
	style MarkerStyle
}

// NewIntercepts returns an Intercepts layer drawing into g.
func NewIntercepts(g *surface.Group, style MarkerStyle) *Intercepts {
	return &Intercepts{group: g, style: style}
}

// Group returns the layer's group.
func (l *Intercepts) Group() *surface.Group { return l.group }

// Update replaces the markers with one per point. An empty point list or a
// degenerate mapper clears every marker.
func (l *Intercepts) Update(points []eval.Point, m scale.Mapper) {
	if len(points) == 0 || m.Degenerate() != 0 {
		l.group.Clear()
		return
	}

	n := len(points)
	l.group.Retain(func(key string) bool {
		i, err := strconv.Atoi(key)
		return err == nil && i < n
	})
	for i, p := range points {
		px, py := m.ToPixel(p.X, p.Y)
		l.group.Marker(strconv.Itoa(i)).Set(gg.Pt(px, py), l.style.Radius, l.style.Fill)
	}
}
