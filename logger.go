// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggplot

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for ggplot and its sub-packages.
// By default ggplot produces no log output. Pass nil to restore the
// silent default. SetLogger is safe for concurrent use.
//
// Log levels used by ggplot:
//   - [slog.LevelDebug]: batch issue, apply and stale-batch discards
//   - [slog.LevelInfo]: evaluator attached, documents saved and loaded
//   - [slog.LevelWarn]: degenerate domains, malformed intercept lists,
//     dropped intercept pairs, evaluator failures
//
// Example:
//
//	ggplot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call it to share the
// configuration set with SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
