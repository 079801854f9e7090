// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package exprcalc is an expression evaluator for ggplot built on
// github.com/expr-lang/expr.
//
// It understands the following equation forms:
//
//	a = 1 + 2          variable definition, a scalar "a = 3"
//	2 * a              expression without x, a scalar
//	y = sin(x) * a     curve
//	f(x) = x^2 - 1     named function, also plotted as a curve
//	f'(x), f''(x)      derivatives of a named function, as curves
//	x^2 / 4            expression of x, a curve
//	int(x^2, 0, 3)     definite integral, a scalar "9"
//
// Definitions are visible to the equations that follow them in the same
// session. The functions ln, log, sin, cos, tan, sqrt and exp and the
// constants pi and e are predefined; log takes an optional base (default 10).
// int(body, a, b) is the definite integral of body, a function of x, from a
// to b. expr's abs, ceil, floor, round, min and max are also available.
// Full-width characters are folded to their ASCII forms before parsing.
package exprcalc

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/text/width"

	"github.com/gogpu/ggplot/eval"
	"github.com/gogpu/ggplot/internal/memo"
)

// DefaultSamples is the number of samples of a curve.
const DefaultSamples = 200

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSamples sets the number of samples per curve. Values below 2 are
// ignored.
func WithSamples(n int) Option {
	return func(e *Evaluator) {
		if n >= 2 {
			e.samples = n
		}
	}
}

// Evaluator hands out independent sessions. Sessions share a table of
// parsed equation shapes, so an Evaluator is safe for concurrent use.
type Evaluator struct {
	samples int
	shapes  *memo.Table[string, shape]
}

// shape is a memoized parse result.
type shape struct {
	eq  equation
	err error
}

// shapeLimit bounds the number of remembered equation shapes.
const shapeLimit = 512

func parseShape(text string) shape {
	eq, err := parse(text)
	return shape{eq: eq, err: err}
}

var _ eval.Evaluator = (*Evaluator)(nil)

// New returns an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		samples: DefaultSamples,
		shapes:  memo.New(shapeLimit, parseShape),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Samples returns the number of samples per curve.
func (e *Evaluator) Samples() int { return e.samples }

// Acquire returns a new session with no definitions.
func (e *Evaluator) Acquire() (eval.Session, error) {
	return &session{
		samples: e.samples,
		shapes:  e.shapes,
		vars:    map[string]float64{},
		funcs:   map[string]*function{},
	}, nil
}

// function is a user-defined function of x.
type function struct {
	name    string
	program *vm.Program
}

type session struct {
	samples int
	shapes  *memo.Table[string, shape]
	vars    map[string]float64
	funcs   map[string]*function
	closed  bool
}

// Evaluate implements eval.Session.
func (s *session) Evaluate(text string, minX, maxX float64) (eval.Result, error) {
	if s.closed {
		return nil, errClosed
	}
	eq, err := s.parse(text)
	if err != nil {
		return nil, err
	}

	switch eq.kind {
	case formEmpty:
		return eval.Empty{}, nil

	case formDerivative:
		fn, err := s.derivative(eq.name, eq.order)
		if err != nil {
			return nil, err
		}
		return s.sample(fn, minX, maxX), nil

	case formFunction:
		p, err := s.compile(eq.rhs, true)
		if err != nil {
			return nil, err
		}
		f := &function{name: eq.name, program: p}
		s.funcs[eq.name] = f
		return s.sample(s.call(f), minX, maxX), nil

	case formAssign, formExpr:
		// A definition or expression that does not mention x is a scalar.
		if p, err := s.compile(eq.rhs, false); err == nil {
			v, err := s.run(p, nil)
			if err != nil {
				return nil, err
			}
			if eq.kind == formAssign && eq.name != "y" {
				s.vars[eq.name] = v
				return eval.Scalar{Value: v, Name: eq.name}, nil
			}
			if eq.kind == formExpr {
				return eval.Scalar{Value: v}, nil
			}
		}
		p, err := s.compile(eq.rhs, true)
		if err != nil {
			return nil, err
		}
		f := &function{name: eq.name, program: p}
		if eq.kind == formAssign && eq.name != "y" {
			s.funcs[eq.name] = f
		}
		return s.sample(s.call(f), minX, maxX), nil
	}
	return nil, fmt.Errorf("%w: %q", eval.ErrInvalidEquation, text)
}

// FindIntercepts implements eval.Session.
func (s *session) FindIntercepts(eq1, eq2 string, minX, maxX float64) ([]float64, error) {
	if s.closed {
		return nil, errClosed
	}
	f1, err := s.curveFunc(eq1)
	if err != nil {
		return nil, err
	}
	f2, err := s.curveFunc(eq2)
	if err != nil {
		return nil, err
	}
	steps := max(s.samples*5, 1000)
	return intercepts(f1, f2, minX, maxX, steps), nil
}

// Close implements eval.Session.
func (s *session) Close() error {
	if s.closed {
		return errClosed
	}
	s.closed = true
	clear(s.vars)
	clear(s.funcs)
	return nil
}

var errClosed = errors.New("exprcalc: session closed")

func (s *session) parse(text string) (equation, error) {
	sh := s.shapes.Get(text)
	return sh.eq, sh.err
}

// curveFunc returns the function of x an equation plots, without changing
// the session's definitions.
func (s *session) curveFunc(text string) (func(float64) float64, error) {
	eq, err := s.parse(text)
	if err != nil {
		return nil, err
	}
	switch eq.kind {
	case formDerivative:
		return s.derivative(eq.name, eq.order)
	case formFunction, formAssign, formExpr:
		if eq.kind == formAssign && eq.name != "y" {
			if _, isVar := s.vars[eq.name]; isVar {
				return nil, fmt.Errorf("%w: %q is not a curve", eval.ErrInvalidEquation, text)
			}
		}
		p, err := s.compile(eq.rhs, true)
		if err != nil {
			return nil, err
		}
		return s.call(&function{name: eq.name, program: p}), nil
	}
	return nil, fmt.Errorf("%w: %q is not a curve", eval.ErrInvalidEquation, text)
}

// derivative returns the order-th forward-difference derivative of the
// named function.
func (s *session) derivative(name string, order int) (func(float64) float64, error) {
	f, ok := s.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown function %s", eval.ErrInvalidEquation, name)
	}
	fn := s.call(f)
	for range order {
		fn = differentiate(fn)
	}
	return fn, nil
}

// derivativeStep is the forward-difference step.
const derivativeStep = 1e-4

func differentiate(f func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		return (f(x+derivativeStep) - f(x)) / derivativeStep
	}
}

// sample evaluates fn at s.samples evenly spaced points of [minX, maxX].
func (s *session) sample(fn func(float64) float64, minX, maxX float64) eval.Curve {
	n := s.samples
	pts := make([]eval.Point, 0, n)
	for i := range n {
		x := minX + (maxX-minX)*float64(i)/float64(n-1)
		if i == n-1 {
			x = maxX
		}
		pts = append(pts, eval.Point{X: x, Y: fn(x)})
	}
	return eval.Curve{Points: pts}
}

// call returns f as a Go function. Evaluation errors yield NaN, which the
// plot drops like any other point outside the domain.
func (s *session) call(f *function) func(float64) float64 {
	return func(x float64) float64 {
		v, err := s.run(f.program, &x)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

// compile compiles src against the session's variables and functions.
// With withX false, a reference to x fails to compile.
func (s *session) compile(src string, withX bool) (*vm.Program, error) {
	src, calls, err := s.rewriteIntegrals(src)
	if err != nil {
		return nil, err
	}
	opts := []expr.Option{expr.Env(s.env(withX, 0)), expr.DisableBuiltin("int")}
	opts = append(opts, s.functions()...)
	opts = append(opts, calls...)
	p, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", eval.ErrInvalidEquation, err)
	}
	return p, nil
}

func (s *session) run(p *vm.Program, x *float64) (float64, error) {
	var env map[string]any
	if x != nil {
		env = s.env(true, *x)
	} else {
		env = s.env(false, 0)
	}
	out, err := expr.Run(p, env)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", eval.ErrInvalidEquation, err)
	}
	return toFloat(out)
}

func (s *session) env(withX bool, x float64) map[string]any {
	env := make(map[string]any, len(s.vars)+3)
	env["pi"] = math.Pi
	env["e"] = math.E
	for k, v := range s.vars {
		env[k] = v
	}
	if withX {
		env["x"] = x
	}
	return env
}

// functions returns the predefined and user-defined functions as
// compiler options.
func (s *session) functions() []expr.Option {
	opts := make([]expr.Option, 0, len(builtins)+len(s.funcs))
	for name, fn := range builtins {
		opts = append(opts, expr.Function(name, fn))
	}
	for name, f := range s.funcs {
		if reserved(name) {
			continue
		}
		call := s.call(f)
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("%s takes 1 argument, got %d", name, len(params))
			}
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			return call(x), nil
		}))
	}
	return opts
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case bool:
		return 0, fmt.Errorf("%w: boolean result", eval.ErrInvalidEquation)
	default:
		return 0, fmt.Errorf("%w: non-numeric result %T", eval.ErrInvalidEquation, v)
	}
}

// fold maps full-width and other wide forms to ASCII.
func fold(s string) string {
	return width.Narrow.String(s)
}
