// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Surface is a retained drawing made of named groups.
type Surface struct {
	width, height float64
	background    gg.RGBA
	groups        []*Group
	nextID        ElementID
}

// New creates an empty surface of the given size in pixels with a white
// background.
func New(width, height float64) *Surface {
	return &Surface{
		width:      width,
		height:     height,
		background: gg.RGBA{R: 1, G: 1, B: 1, A: 1},
	}
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (width, height float64) {
	return s.width, s.height
}

// Resize changes the surface size. Existing geometry is kept as is.
func (s *Surface) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Background returns the background color.
func (s *Surface) Background() gg.RGBA { return s.background }

// SetBackground sets the background color. A fully transparent color
// leaves the backend's initial contents untouched.
func (s *Surface) SetBackground(c gg.RGBA) { s.background = c }

// Group returns the group with the given name, creating it on first use.
// Groups are drawn in creation order.
func (s *Surface) Group(name string) *Group {
	for _, g := range s.groups {
		if g.name == name {
			return g
		}
	}
	g := &Group{name: name, surface: s, index: make(map[string]int)}
	s.groups = append(s.groups, g)
	return g
}

// Groups returns the groups in drawing order.
func (s *Surface) Groups() []*Group {
	out := make([]*Group, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *Surface) allocID() ElementID {
	s.nextID++
	return s.nextID
}

// Playback draws the surface into b: Begin, the background, every group
// in order, then End.
func (s *Surface) Playback(b Backend) error {
	if err := b.Begin(s.width, s.height); err != nil {
		return fmt.Errorf("surface: begin: %w", err)
	}
	if s.background.A > 0 {
		b.Clear(s.background)
	}
	for _, g := range s.groups {
		for _, e := range g.elems {
			e.draw(b)
		}
	}
	if err := b.End(); err != nil {
		return fmt.Errorf("surface: end: %w", err)
	}
	return nil
}

// Group is an ordered, keyed collection of elements.
type Group struct {
	name    string
	surface *Surface
	elems   []Element
	index   map[string]int
	rev     uint64
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Revision counts the modifications of the group and its elements.
func (g *Group) Revision() uint64 { return g.rev }

func (g *Group) touch() { g.rev++ }

// Len returns the number of elements.
func (g *Group) Len() int { return len(g.elems) }

// Elements returns the elements in drawing order.
func (g *Group) Elements() []Element {
	out := make([]Element, len(g.elems))
	copy(out, g.elems)
	return out
}

// Keys returns the element keys in drawing order.
func (g *Group) Keys() []string {
	out := make([]string, len(g.elems))
	for i, e := range g.elems {
		out[i] = e.Key()
	}
	return out
}

// Lookup returns the element stored under key.
func (g *Group) Lookup(key string) (Element, bool) {
	i, ok := g.index[key]
	if !ok {
		return nil, false
	}
	return g.elems[i], true
}

// Path returns the path element stored under key, appending a new empty
// one if there is none. It panics if key holds an element of another kind.
func (g *Group) Path(key string) *Path {
	if e, ok := g.Lookup(key); ok {
		return mustKind[*Path](g, key, e)
	}
	p := &Path{geom: gg.NewPath()}
	g.add(&p.base, key, p)
	return p
}

// Marker returns the marker stored under key, appending a new one if there
// is none. It panics if key holds an element of another kind.
func (g *Group) Marker(key string) *Marker {
	if e, ok := g.Lookup(key); ok {
		return mustKind[*Marker](g, key, e)
	}
	m := &Marker{}
	g.add(&m.base, key, m)
	return m
}

// Label returns the label stored under key, appending a new one if there is
// none. It panics if key holds an element of another kind.
func (g *Group) Label(key string) *Label {
	if e, ok := g.Lookup(key); ok {
		return mustKind[*Label](g, key, e)
	}
	l := &Label{}
	g.add(&l.base, key, l)
	return l
}

func mustKind[T Element](g *Group, key string, e Element) T {
	t, ok := e.(T)
	if !ok {
		panic(fmt.Sprintf("surface: group %q key %q holds %T", g.name, key, e))
	}
	return t
}

func (g *Group) add(b *base, key string, e Element) {
	b.id = g.surface.allocID()
	b.key = key
	b.group = g
	g.index[key] = len(g.elems)
	g.elems = append(g.elems, e)
	g.touch()
}

// Remove deletes the element stored under key and reports whether it
// existed.
func (g *Group) Remove(key string) bool {
	removed := g.Retain(func(k string) bool { return k != key })
	return removed > 0
}

// Retain keeps only the elements whose key satisfies keep, preserving
// their order, and returns the number of removed elements.
func (g *Group) Retain(keep func(key string) bool) int {
	kept := g.elems[:0]
	for _, e := range g.elems {
		if keep(e.Key()) {
			kept = append(kept, e)
		} else {
			e.element().group = nil
		}
	}
	removed := len(g.elems) - len(kept)
	if removed == 0 {
		return 0
	}
	clear(g.elems[len(kept):])
	g.elems = kept
	g.reindex()
	g.touch()
	return removed
}

// Clear removes every element.
func (g *Group) Clear() {
	if len(g.elems) == 0 {
		return
	}
	for _, e := range g.elems {
		e.element().group = nil
	}
	clear(g.elems)
	g.elems = g.elems[:0]
	clear(g.index)
	g.touch()
}

func (g *Group) reindex() {
	clear(g.index)
	for i, e := range g.elems {
		g.index[e.Key()] = i
	}
}
