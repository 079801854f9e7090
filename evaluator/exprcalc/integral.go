// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package exprcalc

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/gogpu/ggplot/eval"
)

// integralSlices is the number of slices of a definite integral.
const integralSlices = 10000

// integrate returns the definite integral of f over [a, b], the mean of the
// left and right Riemann sums over n slices.
func integrate(f func(float64) float64, a, b float64, n int) float64 {
	w := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*w)
	}
	return sum * w
}

// integrals rewrites the int(body, a, b) calls of one source text.
// The bounds stay in the text while each body, a function of x, is
// compiled into a generated function of the two bounds.
type integrals struct {
	s     *session
	funcs []expr.Option
}

// rewriteIntegrals replaces every int(body, a, b) call in src with a call
// to a generated function and returns the functions as compiler options.
func (s *session) rewriteIntegrals(src string) (string, []expr.Option, error) {
	r := &integrals{s: s}
	out, err := r.rewrite(src)
	if err != nil {
		return "", nil, err
	}
	return out, r.funcs, nil
}

func (r *integrals) rewrite(src string) (string, error) {
	var b strings.Builder
	for {
		start, open := findIntegral(src)
		if start < 0 {
			b.WriteString(src)
			return b.String(), nil
		}
		args, end, err := splitArgs(src, open)
		if err != nil {
			return "", err
		}
		if len(args) != 3 {
			return "", fmt.Errorf("%w: int takes 3 arguments, got %d", eval.ErrInvalidEquation, len(args))
		}
		name, err := r.define(args[0])
		if err != nil {
			return "", err
		}
		lo, err := r.rewrite(args[1])
		if err != nil {
			return "", err
		}
		hi, err := r.rewrite(args[2])
		if err != nil {
			return "", err
		}
		b.WriteString(src[:start])
		fmt.Fprintf(&b, "%s(%s, %s)", name, lo, hi)
		src = src[end+1:]
	}
}

// define compiles body as a function of x and registers the function of
// the bounds that integrates it.
func (r *integrals) define(body string) (string, error) {
	p, err := r.s.compile(body, true)
	if err != nil {
		return "", err
	}
	f := r.s.call(&function{name: "int", program: p})
	name := fmt.Sprintf("_int%d", len(r.funcs))
	r.funcs = append(r.funcs, expr.Function(name, func(params ...any) (any, error) {
		a, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		b, err := toFloat(params[1])
		if err != nil {
			return nil, err
		}
		return integrate(f, a, b, integralSlices), nil
	}))
	return name, nil
}

// findIntegral returns the offset of the next "int" call in src and the
// offset of its opening parenthesis, or -1, -1.
func findIntegral(src string) (start, open int) {
	for i := 0; i+3 <= len(src); i++ {
		if src[i:i+3] != "int" {
			continue
		}
		if i > 0 && (identByte(src[i-1]) || src[i-1] == '.') {
			continue
		}
		j := i + 3
		if j < len(src) && identByte(src[j]) {
			continue
		}
		for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
			j++
		}
		if j < len(src) && src[j] == '(' {
			return i, j
		}
	}
	return -1, -1
}

func identByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// splitArgs splits the argument list opening at src[open] on its top-level
// commas. end is the offset of the closing parenthesis.
func splitArgs(src string, open int) (args []string, end int, err error) {
	depth := 0
	from := open + 1
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return append(args, strings.TrimSpace(src[from:i])), i, nil
			}
		case ',':
			if depth == 1 {
				args = append(args, strings.TrimSpace(src[from:i]))
				from = i + 1
			}
		}
	}
	return nil, 0, fmt.Errorf("%w: unbalanced parentheses in int call", eval.ErrInvalidEquation)
}
