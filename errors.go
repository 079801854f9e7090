// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggplot

import "errors"

var (
	// ErrEvaluatorUnavailable is returned when no evaluator session could
	// be acquired. Every equation is rendered as empty; the axes still are.
	ErrEvaluatorUnavailable = errors.New("ggplot: evaluator unavailable")

	// ErrAlreadyReady is returned by AttachEvaluator once an evaluator is
	// attached.
	ErrAlreadyReady = errors.New("ggplot: evaluator already attached")

	// ErrUnknownEquation is returned for an EquationID that is not in the
	// equation list.
	ErrUnknownEquation = errors.New("ggplot: unknown equation")

	// ErrNotWritable is returned by Export for a backend that cannot
	// write to an io.Writer.
	ErrNotWritable = errors.New("ggplot: backend cannot write to a stream")

	// ErrClosed is returned by operations on a closed Controller.
	ErrClosed = errors.New("ggplot: controller closed")
)
