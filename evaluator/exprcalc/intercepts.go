// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package exprcalc

import "math"

const (
	bisectIterations = 60
	rootTolerance    = 1e-6
)

// intercepts scans [minX, maxX] in steps for points where f and g
// coincide and returns them as a flat x0, y0, x1, y1, ... list. Each sign
// change of f-g is refined by bisection; changes across a discontinuity
// are rejected.
func intercepts(f, g func(float64) float64, minX, maxX float64, steps int) []float64 {
	if !(maxX > minX) || steps < 1 {
		return nil
	}
	d := func(x float64) float64 { return f(x) - g(x) }

	var out []float64
	add := func(x float64) {
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return
		}
		out = append(out, x, y)
	}

	x0 := minX
	d0 := d(x0)
	if d0 == 0 {
		add(x0)
	}
	for i := 1; i <= steps; i++ {
		x1 := minX + (maxX-minX)*float64(i)/float64(steps)
		if i == steps {
			x1 = maxX
		}
		d1 := d(x1)
		switch {
		case d1 == 0:
			add(x1)
		case finite(d0) && finite(d1) && d0*d1 < 0:
			if x, ok := bisect(d, x0, x1, d0); ok {
				add(x)
			}
		}
		x0, d0 = x1, d1
	}
	return out
}

func bisect(d func(float64) float64, lo, hi, dlo float64) (float64, bool) {
	for range bisectIterations {
		mid := lo + (hi-lo)/2
		dm := d(mid)
		if dm == 0 {
			return mid, true
		}
		if (dm < 0) == (dlo < 0) {
			lo, dlo = mid, dm
		} else {
			hi = mid
		}
	}
	x := lo + (hi-lo)/2
	return x, math.Abs(d(x)) < rootTolerance
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
