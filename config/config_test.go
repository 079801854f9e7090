// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/ggplot/scale"
)

const sample = `
name: waves
viewport: {width: 640, height: 480}
domain: {min_x: -5, max_x: 5, min_y: -2, max_y: 2}
equations:
  - y = sin(x)
  - y = x / 4
intercepts: [0, 1]
samples: 300
style:
  line_width: 3
  tension: 0.25
  palette: ["#1f77b4", "d62728"]
  background: "#fafafa"
  grid: true
  marker_radius: 5
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Name != "waves" {
		t.Errorf("Name = %q", d.Name)
	}
	if got := d.ScaleViewport(); got != (scale.Viewport{Width: 640, Height: 480}) {
		t.Errorf("viewport = %v", got)
	}
	if got := d.ScaleDomain(); got != (scale.Domain{MinX: -5, MaxX: 5, MinY: -2, MaxY: 2}) {
		t.Errorf("domain = %v", got)
	}
	if want := []string{"y = sin(x)", "y = x / 4"}; !slices.Equal(d.Equations, want) {
		t.Errorf("Equations = %v, want %v", d.Equations, want)
	}
	if i, j, ok := d.InterceptPair(); !ok || i != 0 || j != 1 {
		t.Errorf("InterceptPair() = %d, %d, %v", i, j, ok)
	}
	if d.Samples != 300 || d.Style.LineWidth != 3 || !d.Style.Grid || d.Style.MarkerRadius != 5 {
		t.Errorf("document = %+v", d)
	}
	if d.Style.Tension == nil || *d.Style.Tension != 0.25 {
		t.Errorf("Tension = %v", d.Style.Tension)
	}
}

func TestParse_Defaults(t *testing.T) {
	d, err := Parse([]byte("equations: [\"y = x\"]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.ScaleViewport() != scale.DefaultViewport {
		t.Errorf("viewport = %v, want %v", d.ScaleViewport(), scale.DefaultViewport)
	}
	if d.ScaleDomain() != scale.DefaultDomain {
		t.Errorf("domain = %v, want %v", d.ScaleDomain(), scale.DefaultDomain)
	}
	if _, _, ok := d.InterceptPair(); ok {
		t.Error("intercept pair set without intercepts")
	}
}

func TestParse_DefaultsPerAxis(t *testing.T) {
	s := scale.DefaultDomain
	tests := []struct {
		name string
		doc  string
		want scale.Domain
	}{
		{"x only", "domain: {min_x: -2, max_x: 3}\n", scale.Domain{MinX: -2, MaxX: 3, MinY: s.MinY, MaxY: s.MaxY}},
		{"y only", "domain: {min_y: 0, max_y: 5}\n", scale.Domain{MinX: s.MinX, MaxX: s.MaxX, MinY: 0, MaxY: 5}},
		{"one bound of x", "domain: {max_x: 4}\n", scale.Domain{MinX: 0, MaxX: 4, MinY: s.MinY, MaxY: s.MaxY}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := d.ScaleDomain(); got != tt.want {
				t.Errorf("domain = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tension := 1.5
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"negative width", func(d *Document) { d.Viewport.Width = -1 }},
		{"degenerate domain", func(d *Document) { d.Domain.MaxX = d.Domain.MinX }},
		{"one intercept index", func(d *Document) { d.Intercepts = []int{0} }},
		{"intercept out of range", func(d *Document) { d.Intercepts = []int{0, 2} }},
		{"same equation twice", func(d *Document) { d.Intercepts = []int{1, 1} }},
		{"one sample", func(d *Document) { d.Samples = 1 }},
		{"negative line width", func(d *Document) { d.Style.LineWidth = -2 }},
		{"tension above one", func(d *Document) { d.Style.Tension = &tension }},
		{"bad palette color", func(d *Document) { d.Style.Palette = []string{"#12345"} }},
		{"bad background", func(d *Document) { d.Style.Background = "white" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Default()
			d.Equations = []string{"y = x", "y = -x"}
			if err := d.Validate(); err != nil {
				t.Fatalf("base document invalid: %v", err)
			}
			tt.mutate(d)
			if err := d.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "plots", "waves.yaml")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != d.Name || got.Domain != d.Domain || got.Viewport != d.Viewport {
		t.Errorf("loaded %+v, want %+v", got, d)
	}
	if !slices.Equal(got.Equations, d.Equations) || !slices.Equal(got.Intercepts, d.Intercepts) {
		t.Errorf("equations or intercepts changed: %v %v", got.Equations, got.Intercepts)
	}
	if !slices.Equal(got.Style.Palette, d.Style.Palette) || *got.Style.Tension != *d.Style.Tension {
		t.Errorf("style changed: %+v", got.Style)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("equations: {")); err == nil {
		t.Error("Parse of malformed YAML succeeded")
	}
}

func TestNewController(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	c := d.NewController()
	defer c.Close()

	if c.Viewport() != d.ScaleViewport() || c.Domain() != d.ScaleDomain() {
		t.Errorf("controller viewport %v domain %v", c.Viewport(), c.Domain())
	}
	if c.Equations().Len() != 2 {
		t.Fatalf("equations = %d, want 2", c.Equations().Len())
	}
	a, b, ok := c.InterceptPair()
	if !ok || a != c.Equations().ID(0) || b != c.Equations().ID(1) {
		t.Error("intercept pair not selected")
	}
}
