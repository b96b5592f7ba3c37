// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diag provides the simulator's logging and per-step timing
// sink, built on gosl's colored-print idiom (io.Pf* family) the way the
// teacher's fem package logs solver progress, rather than a structured
// logging library -- none of the pack's dependencies supply one, and a
// line-oriented colored console log is what the corpus consistently uses
// for this class of numerical driver.
package diag

import (
	"time"

	"github.com/cpmech/gosl/io"
)

// Log is a minimal leveled logger over an io.Writer, matching the
// colored-tier convention (info/warn/error) the teacher's solid/porous
// drivers print with io.Pf/io.Pfyel/io.PfRed.
type Log struct {
	w       io.Writer
	Verbose bool
}

// NewLog wraps w; if w is nil, logging is a no-op.
func NewLog(w io.Writer, verbose bool) *Log {
	return &Log{w: w, Verbose: verbose}
}

// Info prints a plain progress line, only when Verbose.
func (l *Log) Info(format string, args ...interface{}) {
	if l == nil || l.w == nil || !l.Verbose {
		return
	}
	io.Ff(l.w, format, args...)
}

// Warn prints a line always, regardless of Verbose, flagging a §7-tier-3
// reported-but-not-fatal condition (e.g. a CG iteration cap reached).
func (l *Log) Warn(format string, args ...interface{}) {
	if l == nil || l.w == nil {
		return
	}
	io.Ff(l.w, "warning: "+format, args...)
}

// Error prints a line always, for a §7-tier-1 condition the caller is
// about to turn into a panic or a hard return.
func (l *Log) Error(format string, args ...interface{}) {
	if l == nil || l.w == nil {
		return
	}
	io.Ff(l.w, "error: "+format, args...)
}

// Stopwatch accumulates wall-clock time spent in successive calls to
// Time, reporting the running mean -- the simulator's equivalent of the
// teacher's utl.DoProf, scoped to one simulation loop instead of the
// whole process, since sub-second per-step timing is not what a
// whole-program CPU profile captures.
type Stopwatch struct {
	count int
	total time.Duration
	last  time.Duration
}

// Time runs fn and records its elapsed duration.
func (st *Stopwatch) Time(fn func()) {
	start := time.Now()
	fn()
	st.last = time.Since(start)
	st.total += st.last
	st.count++
}

// Last returns the duration of the most recently timed call.
func (st *Stopwatch) Last() time.Duration { return st.last }

// Mean returns the running mean step duration, or zero if Time has never
// been called.
func (st *Stopwatch) Mean() time.Duration {
	if st.count == 0 {
		return 0
	}
	return st.total / time.Duration(st.count)
}
