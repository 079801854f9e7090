// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides a retained vector drawing for plots.
//
// A [Surface] is a fixed-size viewport holding named [Group]s of elements
// (stroked paths, filled circle markers and text labels). Groups are drawn in
// creation order, elements in insertion order. Elements are addressed by a
// string key within their group and keep their identity while the key is
// present: re-rendering a curve rebuilds its geometry in place instead of
// replacing the element, and the element's revision counter records every
// rebuild.
//
// # Export
//
// A surface is exported by playing it back into a [Backend]. Backends are
// registered by name following the database/sql driver pattern:
//
//	import _ "github.com/gogpu/ggplot/surface/backends/raster" // "raster" (PNG)
//	import _ "github.com/gogpu/ggplot/surface/backends/vector" // "svg", "pdf", "eps"
//
//	b, err := surface.NewBackend("svg")
//	if err != nil {
//	    // forgotten import?
//	}
//	if err := s.Playback(b); err != nil {
//	    // ...
//	}
//	b.(surface.WriterBackend).WriteTo(w)
//
// # Coordinates
//
// All geometry is in pixels with the origin at the top-left corner and Y
// increasing downwards, the gg convention. Backends with a different native
// coordinate system flip Y themselves.
//
// Surfaces and groups are not safe for concurrent use.
package surface
