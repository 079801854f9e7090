// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package exprcalc

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/gogpu/ggplot/eval"
)

type form uint8

const (
	formEmpty      form = iota
	formExpr            // 2*a, x^2
	formAssign          // a = 1, y = x
	formFunction        // f(x) = x^2
	formDerivative      // f'(x)
)

// equation is the shape of an equation text before compilation.
type equation struct {
	kind  form
	name  string // assigned variable or function name
	order int    // derivative order
	rhs   string // expression source
}

var (
	derivativeRe = regexp.MustCompile(`^([A-Za-z]\w*)('+)\(x\)$`)
	functionRe   = regexp.MustCompile(`^([A-Za-z]\w*)\(x\)$`)
	identRe      = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

func parse(text string) (equation, error) {
	src := strings.TrimSpace(fold(text))
	if src == "" {
		return equation{kind: formEmpty}, nil
	}

	switch strings.Count(src, "=") {
	case 0:
		if m := derivativeRe.FindStringSubmatch(strings.ReplaceAll(src, " ", "")); m != nil {
			return equation{kind: formDerivative, name: m[1], order: len(m[2])}, nil
		}
		return equation{kind: formExpr, rhs: src}, nil

	case 1:
		lhs, rhs, _ := strings.Cut(src, "=")
		lhs = strings.ReplaceAll(lhs, " ", "")
		rhs = strings.TrimSpace(rhs)
		if rhs == "" {
			return equation{}, fmt.Errorf("%w: %q has no right-hand side", eval.ErrInvalidEquation, text)
		}
		if m := functionRe.FindStringSubmatch(lhs); m != nil {
			if reserved(m[1]) {
				return equation{}, fmt.Errorf("%w: %s is predefined", eval.ErrInvalidEquation, m[1])
			}
			return equation{kind: formFunction, name: m[1], rhs: rhs}, nil
		}
		if identRe.MatchString(lhs) {
			if lhs == "x" || reserved(lhs) {
				return equation{}, fmt.Errorf("%w: cannot assign to %s", eval.ErrInvalidEquation, lhs)
			}
			return equation{kind: formAssign, name: lhs, rhs: rhs}, nil
		}
		return equation{}, fmt.Errorf("%w: cannot assign to %q", eval.ErrInvalidEquation, lhs)
	}
	return equation{}, fmt.Errorf("%w: %q has more than one '='", eval.ErrInvalidEquation, text)
}

// exprBuiltins are expr's own numeric functions, available unchanged.
var exprBuiltins = []string{"abs", "ceil", "floor", "round", "max", "min"}

func reserved(name string) bool {
	_, ok := builtins[name]
	return ok || name == "int" || slices.Contains(exprBuiltins, name)
}

// builtins are the predefined functions besides exprBuiltins.
var builtins = map[string]func(params ...any) (any, error){
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"sqrt": unary(math.Sqrt),
	"exp":  unary(math.Exp),
	"ln":   unary(math.Log),
	"log": func(params ...any) (any, error) {
		args, err := floats(params)
		if err != nil {
			return nil, err
		}
		switch len(args) {
		case 1:
			return math.Log10(args[0]), nil
		case 2:
			return math.Log(args[0]) / math.Log(args[1]), nil
		}
		return nil, fmt.Errorf("log takes 1 or 2 arguments, got %d", len(args))
	},
}

func unary(fn func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(params))
		}
		v, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		return fn(v), nil
	}
}

func floats(params []any) ([]float64, error) {
	out := make([]float64, len(params))
	for i, p := range params {
		v, err := toFloat(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
