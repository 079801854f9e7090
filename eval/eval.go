// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package eval defines the boundary between the plot controller and an
// expression evaluator.
//
// The controller never parses or evaluates expressions itself. It acquires
// a [Session] from an [Evaluator] once per batch, asks it to evaluate every
// equation against the visible X window, optionally asks for the intercepts
// of two equations, and closes the session on every exit path.
//
// Evaluation results form a closed union: [Scalar], [Curve] or [Empty].
package eval

import (
	"errors"
	"strconv"
)

// ErrInvalidEquation is returned by evaluators for text they cannot parse
// or evaluate. The controller renders such equations as Empty.
var ErrInvalidEquation = errors.New("eval: invalid equation")

// Point is a location in data space.
type Point struct {
	X, Y float64
}

// Result is the outcome of evaluating one equation.
// It is one of Scalar, Curve or Empty; a nil Result is treated as Empty.
type Result interface {
	isResult()
}

// Scalar is a numeric value, optionally bound to a variable name.
type Scalar struct {
	Value float64
	Name  string
}

func (Scalar) isResult() {}

// String formats s for display next to its equation, e.g. "a = 3".
func (s Scalar) String() string {
	v := strconv.FormatFloat(s.Value, 'g', -1, 64)
	if s.Name == "" {
		return v
	}
	return s.Name + " = " + v
}

// Curve is an ordered sequence of samples of a plotted relation.
type Curve struct {
	Points []Point
}

func (Curve) isResult() {}

// Empty is the result of an equation that produces nothing to display.
type Empty struct{}

func (Empty) isResult() {}

// Kind identifies the variant of a Result.
type Kind uint8

// Result kinds.
const (
	KindEmpty Kind = iota
	KindScalar
	KindCurve
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindCurve:
		return "curve"
	default:
		return "empty"
	}
}

// KindOf returns the kind of r. A nil result is KindEmpty.
func KindOf(r Result) Kind {
	switch r.(type) {
	case Scalar, *Scalar:
		return KindScalar
	case Curve, *Curve:
		return KindCurve
	default:
		return KindEmpty
	}
}

// Session evaluates equations for a single batch. Definitions made by one
// equation (variables, named functions) are visible to later equations of
// the same session.
//
// A Session holds evaluator resources and must be closed exactly once.
type Session interface {
	// Evaluate evaluates text, sampling curves over [minX, maxX].
	Evaluate(text string, minX, maxX float64) (Result, error)

	// FindIntercepts searches [minX, maxX] for points where eq1 and eq2
	// coincide. The result alternates x and y values: x0, y0, x1, y1, ...
	FindIntercepts(eq1, eq2 string, minX, maxX float64) ([]float64, error)

	// Close releases the session.
	Close() error
}

// Evaluator hands out sessions.
type Evaluator interface {
	Acquire() (Session, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func() (Session, error)

// Acquire calls f.
func (f EvaluatorFunc) Acquire() (Session, error) {
	return f()
}

// Pairs reshapes a flat x, y, x, y, ... sequence into points, consuming two
// values at a time in order. An odd-length input violates the Session
// contract: the trailing value is dropped and complete is false so the
// caller can report it.
func Pairs(flat []float64) (pts []Point, complete bool) {
	n := len(flat) / 2
	if n > 0 {
		pts = make([]Point, n)
		for i := range pts {
			pts[i] = Point{X: flat[2*i], Y: flat[2*i+1]}
		}
	}
	return pts, len(flat)%2 == 0
}
