// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vector

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggplot/surface"
)

func testSurface() *surface.Surface {
	s := surface.New(200, 100)
	g := s.Group("g")
	p := g.Path("curve")
	p.SetStroke(surface.Stroke{Color: gg.RGBA{R: 1, A: 1}, Width: 2, Dash: []float64{4, 2}})
	p.Rebuild(func(path *gg.Path) {
		path.MoveTo(0, 100)
		path.CubicTo(50, 0, 150, 0, 200, 100)
	})
	g.Marker("dot").Set(gg.Pt(100, 50), 4, gg.RGBA{B: 1, A: 1})
	g.Label("tick").Set("-2.5", gg.Pt(10, 10), surface.AnchorTopCenter, surface.TextStyle{Size: 10, Color: gg.RGBA{A: 1}})
	return s
}

func TestBackendRegistration(t *testing.T) {
	for _, f := range []Format{FormatSVG, FormatPDF, FormatEPS} {
		b, err := surface.NewBackend(f.String())
		if err != nil {
			t.Fatalf("NewBackend(%q): %v", f, err)
		}
		vb, ok := b.(*Backend)
		if !ok {
			t.Fatalf("%q backend is %T, want *vector.Backend", f, b)
		}
		if vb.Format() != f {
			t.Errorf("Format() = %v, want %v", vb.Format(), f)
		}
	}
}

func TestBackendDocuments(t *testing.T) {
	tests := []struct {
		format Format
		prefix string
	}{
		{FormatSVG, "<?xml"},
		{FormatPDF, "%PDF"},
		{FormatEPS, "%!PS"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			b := New(tt.format)
			if err := testSurface().Playback(b); err != nil {
				t.Fatalf("Playback: %v", err)
			}
			var buf bytes.Buffer
			n, err := b.WriteTo(&buf)
			if err != nil {
				t.Fatalf("WriteTo: %v", err)
			}
			if n != int64(buf.Len()) {
				t.Errorf("WriteTo returned %d, wrote %d bytes", n, buf.Len())
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte(tt.prefix)) {
				t.Errorf("document starts with %q, want %q", firstBytes(buf.Bytes()), tt.prefix)
			}
		})
	}
}

func TestBackendSVGContent(t *testing.T) {
	b := New(FormatSVG)
	if err := testSurface().Playback(b); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	svg := buf.String()
	for _, want := range []string{"<svg", "<path", "-2.5"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG output lacks %q", want)
		}
	}
}

func TestBackendOutputBeforeEnd(t *testing.T) {
	b := New(FormatSVG)
	if err := b.Begin(10, 10); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := b.WriteTo(&bytes.Buffer{}); !errors.Is(err, ErrNotRendered) {
		t.Errorf("WriteTo before End = %v, want ErrNotRendered", err)
	}
}

func TestBackendInvalidSize(t *testing.T) {
	if err := New(FormatPDF).Begin(-1, 10); err == nil {
		t.Error("Begin(-1, 10) succeeded")
	}
}

func TestBackendSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	b, err := surface.ForFile(path)
	if err != nil {
		t.Fatalf("ForFile: %v", err)
	}
	if err := testSurface().Playback(b); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if err := b.(surface.FileBackend).SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("saved file is not an SVG document")
	}
}

func TestBackendFlipsY(t *testing.T) {
	b := New(FormatSVG)
	if err := b.Begin(100, 80); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	p := b.pt(gg.Pt(10, 0))
	if float64(p.X) != 10 || float64(p.Y) != 80 {
		t.Errorf("pt(10, 0) = %v, want {10 80}", p)
	}
}

func firstBytes(b []byte) []byte {
	if len(b) > 8 {
		return b[:8]
	}
	return b
}
