// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"slices"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggplot/curve"
	"github.com/gogpu/ggplot/internal/spline"
	"github.com/gogpu/ggplot/surface"
)

// Keyed is a scaled curve together with the identity of its equation.
type Keyed struct {
	// Key identifies the curve element across updates.
	Key string

	// Index is the equation position, used to pick the stroke color.
	Index int

	Curve curve.Scaled
}

// Curves keeps one path element per curve.
type Curves struct {
	group *surface.Group
	style CurveStyle
}

// NewCurves returns a Curves layer drawing into g.
func NewCurves(g *surface.Group, style CurveStyle) *Curves {
	return &Curves{group: g, style: style}
}

// Group returns the layer's group.
func (c *Curves) Group() *surface.Group { return c.group }

// Update makes the group hold exactly one path per element of curves.
//
// Elements whose key is absent from curves are removed. The others are
// rebuilt in place, so a key keeps its element and geometry pointer for as
// long as it is present. A curve with fewer than two points gets empty
// geometry.
func (c *Curves) Update(curves []Keyed) {
	keys := make(map[string]struct{}, len(curves))
	for _, k := range curves {
		keys[k.Key] = struct{}{}
	}
	c.group.Retain(func(key string) bool {
		_, ok := keys[key]
		return ok
	})

	for _, k := range curves {
		p := c.group.Path(k.Key)
		stroke := surface.Stroke{Color: c.style.Color(k.Index), Width: c.style.Width}
		if !strokeEqual(p.Stroke(), stroke) {
			p.SetStroke(stroke)
		}
		p.Rebuild(func(path *gg.Path) {
			spline.Cardinal(path, k.Curve.Points, c.style.Tension)
		})
	}
}

// Path returns the path element of key.
func (c *Curves) Path(key string) (*surface.Path, bool) {
	e, ok := c.group.Lookup(key)
	if !ok {
		return nil, false
	}
	p, ok := e.(*surface.Path)
	return p, ok
}

func strokeEqual(a, b surface.Stroke) bool {
	return a.Color == b.Color && a.Width == b.Width && slices.Equal(a.Dash, b.Dash)
}
