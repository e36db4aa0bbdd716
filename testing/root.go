// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"sync"

	"go.chromium.org/scruffy/results"
)

// Counters tallies evaluated and failed assertions.
type Counters struct {
	Assertions int
	Failures   int
}

// OutputStream receives the output of a single test.
type OutputStream interface {
	// Log reports an informational message from the test.
	Log(msg string) error
	// Error reports a failed assertion. A test that reported one or more
	// errors has failed.
	Error(e *results.Error) error
}

// RunRoot holds the state shared by all tests of one run: the run-wide
// assertion and failure totals. A driver creates a new RunRoot for every run,
// so totals start from zero.
type RunRoot struct {
	mu    sync.Mutex
	total Counters
}

// NewRunRoot returns a RunRoot with zero totals.
func NewRunRoot() *RunRoot {
	return &RunRoot{}
}

// Totals returns the run-wide counters.
func (r *RunRoot) Totals() Counters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func (r *RunRoot) count(failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total.Assertions++
	if failed {
		r.total.Failures++
	}
}

// NewTestState returns the State for one execution of t. Its per-test
// counters start from zero.
func (r *RunRoot) NewTestState(t TestInstance, out OutputStream) *State {
	return &State{root: r, test: t, out: out}
}
