// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package exprcalc

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/ggplot/eval"
)

func newSession(t *testing.T, opts ...Option) eval.Session {
	t.Helper()
	s, err := New(opts...).Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestEvaluate_Scalars(t *testing.T) {
	tests := []struct {
		text string
		want eval.Scalar
	}{
		{"a = 1 + 2", eval.Scalar{Value: 3, Name: "a"}},
		{"7 / 2", eval.Scalar{Value: 3.5}},
		{"2^10", eval.Scalar{Value: 1024}},
		{"sqrt(16)", eval.Scalar{Value: 4}},
		{"log(1000)", eval.Scalar{Value: 3}},
		{"log(8, 2)", eval.Scalar{Value: 3}},
		{"ln(e)", eval.Scalar{Value: 1}},
		{"abs(-2.5)", eval.Scalar{Value: 2.5}},
		{"half = pi / 2", eval.Scalar{Value: math.Pi / 2, Name: "half"}},
		{"ｂ ＝ ４", eval.Scalar{Value: 4, Name: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := newSession(t)
			r, err := s.Evaluate(tt.text, -10, 10)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			got, ok := r.(eval.Scalar)
			if !ok {
				t.Fatalf("result = %T, want eval.Scalar", r)
			}
			if got.Name != tt.want.Name || !almostEqual(got.Value, tt.want.Value, 1e-12) {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_Empty(t *testing.T) {
	s := newSession(t)
	for _, text := range []string{"", "   ", "\t"} {
		r, err := s.Evaluate(text, -10, 10)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", text, err)
		}
		if _, ok := r.(eval.Empty); !ok {
			t.Errorf("Evaluate(%q) = %T, want eval.Empty", text, r)
		}
	}
}

func TestEvaluate_Invalid(t *testing.T) {
	tests := []string{
		"a = b = 1",
		"y = ",
		"x = 2",
		"sin(x) = 1",
		"2 = a",
		"y = x +",
		"y = undefined_name * x",
		"g'(x)",
		"int(x, 0)",
		"int(x, 0, 1",
		"int = 3",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			s := newSession(t)
			if _, err := s.Evaluate(text, -10, 10); !errors.Is(err, eval.ErrInvalidEquation) {
				t.Errorf("err = %v, want ErrInvalidEquation", err)
			}
		})
	}
}

func TestEvaluate_Integral(t *testing.T) {
	tests := []struct {
		defs []string
		text string
		want eval.Scalar
	}{
		{nil, "int(x, 0, 1)", eval.Scalar{Value: 0.5}},
		{nil, "int(x^2, 0, 3)", eval.Scalar{Value: 9}},
		{nil, "area = int(sin(x), 0, pi)", eval.Scalar{Value: 2, Name: "area"}},
		{nil, "int(x, 0, 2) + int(1, 0, 3)", eval.Scalar{Value: 5}},
		{nil, "int(x, 1, 0)", eval.Scalar{Value: -0.5}},
		{[]string{"a = 2"}, "int(a * x, 0, 1)", eval.Scalar{Value: 1}},
		{[]string{"f(x) = x^2"}, "int(f(x), 0, 3)", eval.Scalar{Value: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := newSession(t, WithSamples(3))
			for _, def := range tt.defs {
				if _, err := s.Evaluate(def, -10, 10); err != nil {
					t.Fatalf("Evaluate(%q): %v", def, err)
				}
			}
			r, err := s.Evaluate(tt.text, -10, 10)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			got, ok := r.(eval.Scalar)
			if !ok {
				t.Fatalf("result = %T, want eval.Scalar", r)
			}
			if got.Name != tt.want.Name || !almostEqual(got.Value, tt.want.Value, 1e-6) {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_IntegralCurve(t *testing.T) {
	tests := []string{"y = x * int(1, 0, 2)", "y = int(2*x, 0, x)"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			s := newSession(t, WithSamples(3))
			r, err := s.Evaluate(text, 0, 2)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			c, ok := r.(eval.Curve)
			if !ok {
				t.Fatalf("result = %T, want eval.Curve", r)
			}
			if got := c.Points[2].Y; !almostEqual(got, 4, 1e-6) {
				t.Errorf("y(2) = %v, want 4", got)
			}
		})
	}
}

func TestIntegrate(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		a, b float64
		want float64
	}{
		{"constant", func(float64) float64 { return 3 }, 0, 2, 6},
		{"line", func(x float64) float64 { return x }, -1, 1, 0},
		{"cube", func(x float64) float64 { return x * x * x }, 0, 2, 4},
		{"empty interval", func(x float64) float64 { return x }, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := integrate(tt.f, tt.a, tt.b, integralSlices); !almostEqual(got, tt.want, 1e-6) {
				t.Errorf("integrate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindIntegral(t *testing.T) {
	tests := []struct {
		src         string
		start, open int
	}{
		{"int(x, 0, 1)", 0, 3},
		{"2 * int (x, 0, 1)", 4, 8},
		{"print(x)", -1, -1},
		{"interval(x)", -1, -1},
		{"x + int", -1, -1},
	}
	for _, tt := range tests {
		start, open := findIntegral(tt.src)
		if start != tt.start || open != tt.open {
			t.Errorf("findIntegral(%q) = %d, %d, want %d, %d", tt.src, start, open, tt.start, tt.open)
		}
	}
}

func TestEvaluate_Curve(t *testing.T) {
	s := newSession(t, WithSamples(11))
	r, err := s.Evaluate("y = 2*x + 1", -5, 5)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	c, ok := r.(eval.Curve)
	if !ok {
		t.Fatalf("result = %T, want eval.Curve", r)
	}
	if len(c.Points) != 11 {
		t.Fatalf("len(Points) = %d, want 11", len(c.Points))
	}
	for i, p := range c.Points {
		wantX := -5 + float64(i)
		if !almostEqual(p.X, wantX, 1e-12) || !almostEqual(p.Y, 2*wantX+1, 1e-12) {
			t.Errorf("Points[%d] = %v, want (%v, %v)", i, p, wantX, 2*wantX+1)
		}
	}
	if c.Points[10].X != 5 {
		t.Errorf("last x = %v, want exactly 5", c.Points[10].X)
	}
}

func TestEvaluate_CurveForms(t *testing.T) {
	tests := []struct {
		text string
		at   float64
		want float64
	}{
		{"y = 2", 3, 2},
		{"x^2 / 4", 2, 1},
		{"f(x) = x^2 - 1", 3, 8},
		{"g = x * 3", 2, 6},
		{"y = sin(x)", math.Pi / 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := newSession(t, WithSamples(3))
			r, err := s.Evaluate(tt.text, -tt.at, tt.at)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			c, ok := r.(eval.Curve)
			if !ok {
				t.Fatalf("result = %T, want eval.Curve", r)
			}
			last := c.Points[len(c.Points)-1]
			if !almostEqual(last.Y, tt.want, 1e-9) {
				t.Errorf("y(%v) = %v, want %v", tt.at, last.Y, tt.want)
			}
		})
	}
}

func TestEvaluate_DefinitionsCarryForward(t *testing.T) {
	s := newSession(t, WithSamples(3))
	steps := []string{"a = 3", "f(x) = a * x", "y = f(x) + 1"}
	var r eval.Result
	for _, text := range steps {
		var err error
		if r, err = s.Evaluate(text, 0, 2); err != nil {
			t.Fatalf("Evaluate(%q): %v", text, err)
		}
	}
	c := r.(eval.Curve)
	if got := c.Points[2].Y; !almostEqual(got, 7, 1e-12) {
		t.Errorf("y(2) = %v, want 7", got)
	}

	// A fresh session does not see the definitions.
	other := newSession(t)
	if _, err := other.Evaluate("y = f(x)", 0, 2); err == nil {
		t.Error("definitions leaked across sessions")
	}
}

func TestEvaluate_Derivative(t *testing.T) {
	s := newSession(t, WithSamples(5))
	if _, err := s.Evaluate("f(x) = x^3", -2, 2); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		text string
		want func(float64) float64
		tol  float64
	}{
		{"f'(x)", func(x float64) float64 { return 3 * x * x }, 1e-2},
		{"f''(x)", func(x float64) float64 { return 6 * x }, 1e-2},
	}
	for _, tt := range tests {
		r, err := s.Evaluate(tt.text, -2, 2)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", tt.text, err)
		}
		for _, p := range r.(eval.Curve).Points {
			if !almostEqual(p.Y, tt.want(p.X), tt.tol) {
				t.Errorf("%s at %v = %v, want %v", tt.text, p.X, p.Y, tt.want(p.X))
			}
		}
	}
}

func TestEvaluate_NaNSamples(t *testing.T) {
	s := newSession(t, WithSamples(3))
	r, err := s.Evaluate("y = sqrt(x)", -1, 1)
	if err != nil {
		t.Fatal(err)
	}
	c := r.(eval.Curve)
	if !math.IsNaN(c.Points[0].Y) {
		t.Errorf("sqrt(-1) = %v, want NaN", c.Points[0].Y)
	}
	if c.Points[2].Y != 1 {
		t.Errorf("sqrt(1) = %v, want 1", c.Points[2].Y)
	}
}

func TestFindIntercepts(t *testing.T) {
	tests := []struct {
		name     string
		eq1, eq2 string
		min, max float64
		want     []eval.Point
	}{
		{"crossing lines", "y = x", "y = -x", -10, 10, []eval.Point{{X: 0, Y: 0}}},
		{"parabola and line", "y = x^2", "y = 4", -10, 10, []eval.Point{{X: -2, Y: 4}, {X: 2, Y: 4}}},
		{"outside window", "y = x", "y = 5", -1, 1, nil},
		{"parallel", "y = x", "y = x + 1", -10, 10, nil},
		{"tangent discontinuity", "y = tan(x)", "y = 0", 1.5, 1.6, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			flat, err := s.FindIntercepts(tt.eq1, tt.eq2, tt.min, tt.max)
			if err != nil {
				t.Fatalf("FindIntercepts: %v", err)
			}
			pts, complete := eval.Pairs(flat)
			if !complete {
				t.Fatalf("odd-length result %v", flat)
			}
			if len(pts) != len(tt.want) {
				t.Fatalf("intercepts = %v, want %v", pts, tt.want)
			}
			for i, p := range pts {
				if !almostEqual(p.X, tt.want[i].X, 1e-6) || !almostEqual(p.Y, tt.want[i].Y, 1e-6) {
					t.Errorf("intercept %d = %v, want %v", i, p, tt.want[i])
				}
			}
		})
	}
}

func TestFindIntercepts_UsesDefinitions(t *testing.T) {
	s := newSession(t)
	if _, err := s.Evaluate("f(x) = x - 3", -10, 10); err != nil {
		t.Fatal(err)
	}
	flat, err := s.FindIntercepts("f(x) = x - 3", "y = 0", -10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(flat) != 2 || !almostEqual(flat[0], 3, 1e-6) {
		t.Errorf("intercepts = %v, want [3 0]", flat)
	}

	if _, err := s.Evaluate("a = 2", -10, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := s.FindIntercepts("a = 2", "y = x", -10, 10); !errors.Is(err, eval.ErrInvalidEquation) {
		t.Errorf("scalar intercept err = %v, want ErrInvalidEquation", err)
	}
}

func TestSession_Close(t *testing.T) {
	s, err := New().Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err == nil {
		t.Error("second Close succeeded")
	}
	if _, err := s.Evaluate("1", 0, 1); err == nil {
		t.Error("Evaluate after Close succeeded")
	}
}

func TestWithSamples(t *testing.T) {
	if got := New().Samples(); got != DefaultSamples {
		t.Errorf("default samples = %d, want %d", got, DefaultSamples)
	}
	if got := New(WithSamples(1)).Samples(); got != DefaultSamples {
		t.Errorf("WithSamples(1) applied: %d", got)
	}
	if got := New(WithSamples(50)).Samples(); got != 50 {
		t.Errorf("WithSamples(50) = %d", got)
	}
}

func TestEvaluator_SharesParsedShapes(t *testing.T) {
	e := New()
	for range 3 {
		s, err := e.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Evaluate("y = x^2", -1, 1); err != nil {
			t.Fatal(err)
		}
		s.Close()
	}
	if hits, misses := e.shapes.Stats(); misses != 1 || hits != 2 {
		t.Errorf("shape table hits %d misses %d, want 2 and 1", hits, misses)
	}
}
