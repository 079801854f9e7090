// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scale

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestMapper_ToPixel(t *testing.T) {
	m := NewMapper(DefaultDomain, Viewport{Width: 800, Height: 600})

	tests := []struct {
		name   string
		x, y   float64
		px, py float64
	}{
		{"origin", 0, 0, 400, 300},
		{"bottom left", -10, -10, 0, 600},
		{"top right", 10, 10, 800, 0},
		{"top left", -10, 10, 0, 0},
		{"quarter", -5, 5, 200, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py := m.ToPixel(tt.x, tt.y)
			if !almostEqual(px, tt.px) || !almostEqual(py, tt.py) {
				t.Errorf("ToPixel(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, px, py, tt.px, tt.py)
			}
		})
	}
}

func TestMapper_RoundTrip(t *testing.T) {
	domains := []Domain{
		DefaultDomain,
		{MinX: -5, MaxX: 5, MinY: -1, MaxY: 1},
		{MinX: 0.001, MaxX: 0.002, MinY: 1e6, MaxY: 2e6},
		{MinX: -1e-3, MaxX: 1e9, MinY: -7, MaxY: 13},
	}
	viewports := []Viewport{{800, 600}, {1, 1}, {4000, 2000}}

	for _, d := range domains {
		for _, v := range viewports {
			m := NewMapper(d, v)
			for i := 0; i <= 10; i++ {
				for j := 0; j <= 10; j++ {
					x := d.MinX + float64(i)/10*d.Width()
					y := d.MinY + float64(j)/10*d.Height()
					gx, gy := m.ToData(m.ToPixel(x, y))
					if !almostEqual(gx, x) || !almostEqual(gy, y) {
						t.Fatalf("%v on %v: round trip (%v, %v) -> (%v, %v)", d, v, x, y, gx, gy)
					}
				}
			}
		}
	}
}

func TestMapper_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		d    Domain
		v    Viewport
		want Axis
	}{
		{"valid", DefaultDomain, DefaultViewport, 0},
		{"flat x", Domain{MinX: 1, MaxX: 1, MinY: 0, MaxY: 1}, DefaultViewport, AxisX},
		{"flat y", Domain{MinX: 0, MaxX: 1, MinY: 2, MaxY: 2}, DefaultViewport, AxisY},
		{"inverted x", Domain{MinX: 1, MaxX: 0, MinY: 0, MaxY: 1}, DefaultViewport, AxisX},
		{"nan y", Domain{MinX: 0, MaxX: 1, MinY: math.NaN(), MaxY: 1}, DefaultViewport, AxisY},
		{"both", Domain{}, DefaultViewport, AxisX | AxisY},
		{"zero viewport width", DefaultDomain, Viewport{Width: 0, Height: 10}, AxisX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapper(tt.d, tt.v)
			if got := m.Degenerate(); got != tt.want {
				t.Fatalf("Degenerate() = %v, want %v", got, tt.want)
			}
			err := m.Err()
			if tt.want == 0 {
				if err != nil {
					t.Fatalf("Err() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrDegenerateDomain) {
				t.Fatalf("Err() = %v, want ErrDegenerateDomain", err)
			}
			var dde *DegenerateDomainError
			if !errors.As(err, &dde) || dde.Axes != tt.want {
				t.Fatalf("Err() axes = %v, want %v", dde, tt.want)
			}
		})
	}
}

func TestMapper_DegenerateAxisYieldsNaN(t *testing.T) {
	m := NewMapper(Domain{MinX: 3, MaxX: 3, MinY: -1, MaxY: 1}, Viewport{Width: 100, Height: 100})

	px, py := m.ToPixel(3, 0)
	if !math.IsNaN(px) {
		t.Errorf("px = %v, want NaN on degenerate axis", px)
	}
	if !almostEqual(py, 50) {
		t.Errorf("py = %v, want 50", py)
	}

	x, y := m.ToData(10, 50)
	if !math.IsNaN(x) || !almostEqual(y, 0) {
		t.Errorf("ToData = (%v, %v), want (NaN, 0)", x, y)
	}
}

func TestDomain_Contains(t *testing.T) {
	d := Domain{MinX: -1, MaxX: 1, MinY: -2, MaxY: 2}
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{-1, -2, true},
		{1, 2, true},
		{1.0000001, 0, false},
		{0, -2.5, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := d.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDomain_CoversX(t *testing.T) {
	d := DefaultDomain
	if !d.CoversX(-5, 5) {
		t.Error("[-10,10] should cover [-5,5]")
	}
	if !d.CoversX(-10, 10) {
		t.Error("[-10,10] should cover itself")
	}
	if d.CoversX(-11, 5) {
		t.Error("[-10,10] should not cover [-11,5]")
	}
}

func TestAxis_String(t *testing.T) {
	tests := []struct {
		a    Axis
		want string
	}{
		{0, "none"},
		{AxisX, "x"},
		{AxisY, "y"},
		{AxisX | AxisY, "x,y"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Axis(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
