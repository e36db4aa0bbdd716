// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package results defines the outcome of a harness run as returned by the
// runner package and saved to results.json.
package results

import (
	"fmt"
	"path/filepath"
	"time"
)

// Error describes a failed assertion, or a panic, reported by a test.
type Error struct {
	Time   time.Time `json:"time"`
	Reason string    `json:"reason"`
	File   string    `json:"file"`
	Line   int       `json:"line"`
	Stack  string    `json:"stack,omitempty"`
	// Fatal is set for failures that aborted the whole run.
	Fatal bool `json:"fatal,omitempty"`
}

// Location returns "file.go:123", using the base name of File.
func (e *Error) Location() string {
	if e.File == "" {
		return "???"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(e.File), e.Line)
}

// TestResult contains the outcome of a single test.
type TestResult struct {
	Suite string `json:"suite"`
	Name  string `json:"name"`
	// Assertions and Failures count the assertions evaluated by this test and
	// how many of them failed.
	Assertions int           `json:"assertions"`
	Failures   int           `json:"failures"`
	Fatal      bool          `json:"fatal,omitempty"`
	Start      time.Time     `json:"start"`
	Duration   time.Duration `json:"duration"`
	Errors     []*Error      `json:"errors,omitempty"`
}

// FullName returns the test name qualified by its suite, e.g. "scruffy.equals".
func (r *TestResult) FullName() string {
	return r.Suite + "." + r.Name
}

// Passed reports whether no assertion of the test failed.
func (r *TestResult) Passed() bool {
	return r.Failures == 0
}

// Result contains the outcome of a whole run.
type Result struct {
	// ID uniquely identifies the run.
	ID       string        `json:"id"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Tests    []*TestResult `json:"tests"`
	// Assertions and Failures are the run-wide totals.
	Assertions int `json:"assertions"`
	Failures   int `json:"failures"`
	// Aborted is set when a fatal assertion stopped the run. NotRun then
	// lists the full names of the tests that were never started.
	Aborted bool     `json:"aborted,omitempty"`
	NotRun  []string `json:"notRun,omitempty"`
}

// Failed reports whether any assertion failed during the run.
func (r *Result) Failed() bool {
	return r.Failures > 0 || r.Aborted
}

// ExitCode returns the process exit status for the run: 0 on success and 1
// otherwise.
func (r *Result) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

// FailedTests returns the tests that had at least one failed assertion, in
// run order.
func (r *Result) FailedTests() []*TestResult {
	var failed []*TestResult
	for _, t := range r.Tests {
		if !t.Passed() {
			failed = append(failed, t)
		}
	}
	return failed
}
