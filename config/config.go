// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads and saves plot documents.
//
// A document describes one plot: its size, the visible domain, the list of
// equations, an optional pair of equations whose intersections are marked,
// and the drawing style. Documents are stored as YAML:
//
//	name: waves
//	viewport: {width: 800, height: 600}
//	domain: {min_x: -10, max_x: 10, min_y: -2, max_y: 2}
//	equations:
//	  - y = sin(x)
//	  - y = x / 4
//	intercepts: [0, 1]
//	style:
//	  line_width: 2
//	  palette: ["#1f77b4", "#d62728"]
//	  grid: true
//
// Missing fields take the defaults of the ggplot package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/scale"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid document")

// Document is a plot document.
type Document struct {
	Name       string   `yaml:"name,omitempty"`
	Viewport   Viewport `yaml:"viewport"`
	Domain     Domain   `yaml:"domain"`
	Equations  []string `yaml:"equations"`
	Intercepts []int    `yaml:"intercepts,omitempty"`
	Samples    int      `yaml:"samples,omitempty"`
	Style      Style    `yaml:"style"`
}

// Viewport is the output size in pixels.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Domain is the visible data rectangle.
type Domain struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// Style is the drawing style. Colors are hex strings as accepted by gg.Hex.
type Style struct {
	LineWidth    float64  `yaml:"line_width,omitempty"`
	Tension      *float64 `yaml:"tension,omitempty"`
	Palette      []string `yaml:"palette,omitempty"`
	Background   string   `yaml:"background,omitempty"`
	Grid         bool     `yaml:"grid,omitempty"`
	MarkerRadius float64  `yaml:"marker_radius,omitempty"`
}

// Default returns a document with the ggplot defaults and no equations.
func Default() *Document {
	d := &Document{}
	d.applyDefaults()
	return d
}

// Load reads and validates the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	d.applyDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Marshal encodes d as YAML.
func (d *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Save writes d to path, creating the parent directory if needed.
func (d *Document) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills in missing values.
func (d *Document) applyDefaults() {
	if d.Viewport == (Viewport{}) {
		v := scale.DefaultViewport
		d.Viewport = Viewport{Width: v.Width, Height: v.Height}
	}
	// Each axis left unset takes the default extent on its own.
	s := scale.DefaultDomain
	if d.Domain.MinX == 0 && d.Domain.MaxX == 0 {
		d.Domain.MinX, d.Domain.MaxX = s.MinX, s.MaxX
	}
	if d.Domain.MinY == 0 && d.Domain.MaxY == 0 {
		d.Domain.MinY, d.Domain.MaxY = s.MinY, s.MaxY
	}
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate reports the first problem with d.
func (d *Document) Validate() error {
	if d.Viewport.Width <= 0 || d.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalid, d.Viewport.Width, d.Viewport.Height)
	}
	if err := d.ScaleDomain().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch len(d.Intercepts) {
	case 0:
	case 2:
		i, j := d.Intercepts[0], d.Intercepts[1]
		n := len(d.Equations)
		if i < 0 || i >= n || j < 0 || j >= n || i == j {
			return fmt.Errorf("%w: intercepts %v for %d equations", ErrInvalid, d.Intercepts, n)
		}
	default:
		return fmt.Errorf("%w: intercepts needs two indices, got %d", ErrInvalid, len(d.Intercepts))
	}
	if d.Samples != 0 && d.Samples < 2 {
		return fmt.Errorf("%w: samples %d", ErrInvalid, d.Samples)
	}
	if d.Style.LineWidth < 0 || d.Style.MarkerRadius < 0 {
		return fmt.Errorf("%w: negative line width or marker radius", ErrInvalid)
	}
	if t := d.Style.Tension; t != nil && (*t < 0 || *t > 1) {
		return fmt.Errorf("%w: tension %g outside [0, 1]", ErrInvalid, *t)
	}
	for _, c := range d.Style.Palette {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%w: palette color %q", ErrInvalid, c)
		}
	}
	if c := d.Style.Background; c != "" && !hexColor.MatchString(c) {
		return fmt.Errorf("%w: background color %q", ErrInvalid, c)
	}
	return nil
}

// ScaleDomain returns the document's domain.
func (d *Document) ScaleDomain() scale.Domain {
	return scale.Domain{MinX: d.Domain.MinX, MaxX: d.Domain.MaxX, MinY: d.Domain.MinY, MaxY: d.Domain.MaxY}
}

// ScaleViewport returns the document's viewport.
func (d *Document) ScaleViewport() scale.Viewport {
	return scale.Viewport{Width: d.Viewport.Width, Height: d.Viewport.Height}
}

// InterceptPair returns the indices of the equations whose intersections
// are marked.
func (d *Document) InterceptPair() (i, j int, ok bool) {
	if len(d.Intercepts) != 2 {
		return 0, 0, false
	}
	return d.Intercepts[0], d.Intercepts[1], true
}

// Options converts the document to controller options.
func (d *Document) Options() []ggplot.Option {
	opts := []ggplot.Option{
		ggplot.WithViewport(d.ScaleViewport()),
		ggplot.WithDomain(d.ScaleDomain()),
		ggplot.WithGrid(d.Style.Grid),
	}
	if d.Style.LineWidth > 0 {
		opts = append(opts, ggplot.WithLineWidth(d.Style.LineWidth))
	}
	if d.Style.Tension != nil {
		opts = append(opts, ggplot.WithTension(*d.Style.Tension))
	}
	if len(d.Style.Palette) > 0 {
		palette := make([]gg.RGBA, len(d.Style.Palette))
		for i, c := range d.Style.Palette {
			palette[i] = gg.Hex(c)
		}
		opts = append(opts, ggplot.WithPalette(palette...))
	}
	if d.Style.Background != "" {
		opts = append(opts, ggplot.WithBackground(gg.Hex(d.Style.Background)))
	}
	if d.Style.MarkerRadius > 0 {
		opts = append(opts, ggplot.WithMarkerRadius(d.Style.MarkerRadius))
	}
	return opts
}

// NewController builds a controller for the document. The caller attaches
// the evaluator.
func (d *Document) NewController() *ggplot.Controller {
	c := ggplot.NewController(ggplot.NewEquations(d.Equations...), d.Options()...)
	if i, j, ok := d.InterceptPair(); ok {
		c.SelectInterceptsAt(i, j)
	}
	return c
}
