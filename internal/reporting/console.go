// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package reporting writes the outcome of a run: status lines on the console
// and result files (results.json, results.xml, timing.json).
package reporting

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.chromium.org/scruffy/results"
)

// Status tags printed at the start of console lines.
const (
	tagBanner  = "[==========]"
	tagSection = "[----------]"
	tagRun     = "[ RUN      ]"
	tagOK      = "[       OK ]"
	tagFailed  = "[  FAILED  ]"
	tagPassed  = "[  PASSED  ]"
	tagAborted = "[  ABORTED ]"
)

// Console prints status lines in the style of Google Test. Failure lines go
// to the error stream, everything else to the output stream.
type Console struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	color  bool
}

// NewConsole returns a Console writing to stdout and stderr. If color is
// true, lines are colored with ANSI escape sequences.
func NewConsole(stdout, stderr io.Writer, color bool) *Console {
	return &Console{stdout: stdout, stderr: stderr, color: color}
}

func (c *Console) paint(clr, s string) string {
	if !c.color {
		return s
	}
	return clr + s + reset
}

func (c *Console) println(w io.Writer, clr, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(w, c.paint(clr, line))
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Banner prints a "[==========]" line.
func (c *Console) Banner(format string, args ...interface{}) {
	c.println(c.stdout, green, tagBanner+" "+fmt.Sprintf(format, args...))
}

// Section prints a "[----------]" line.
func (c *Console) Section(format string, args ...interface{}) {
	c.println(c.stdout, green, tagSection+" "+fmt.Sprintf(format, args...))
}

// Start prints the banner that opens a run of numTests tests from numSuites
// suites.
func (c *Console) Start(numTests, numSuites int) {
	c.Banner("Running %s from %s.", plural(numTests, "test"), plural(numSuites, "test suite"))
	c.Section("Global test environment set-up.")
}

// SuiteStart prints the header of a group of consecutive tests of a suite.
func (c *Console) SuiteStart(suite string, numTests int) {
	c.Section("%s from %s", plural(numTests, "test"), suite)
}

// SuiteEnd prints the footer of a group of consecutive tests of a suite.
func (c *Console) SuiteEnd(suite string, numTests int, d time.Duration) {
	c.Section("%s from %s (%d ms total)", plural(numTests, "test"), suite, millis(d))
}

// TestStart prints the line announcing that a test starts.
func (c *Console) TestStart(fullName string) {
	c.println(c.stdout, green, tagRun+" "+fullName)
}

// TestEnd prints the pass or fail line of a finished test.
func (c *Console) TestEnd(r *results.TestResult) {
	if r.Passed() {
		c.println(c.stdout, green, fmt.Sprintf("%s %s (%d ms)", tagOK, r.FullName(), millis(r.Duration)))
		return
	}
	c.println(c.stderr, red, fmt.Sprintf("%s %s (%d ms)", tagFailed, r.FullName(), millis(r.Duration)))
}

// Log prints a message logged by a test, indented below the test's RUN line.
func (c *Console) Log(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(msg, "\n"), "\n") {
		fmt.Fprintln(c.stdout, "    "+line)
	}
}

// Error prints the diagnostic of a failed assertion, prefixed by its source
// location.
func (c *Console) Error(e *results.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.stdout, "%s %s\n", c.paint(cyan, e.Location()+":"), e.Reason)
	if e.Stack != "" {
		fmt.Fprintln(c.stdout, strings.TrimRight(e.Stack, "\n"))
	}
}

// Aborted prints the line explaining that a fatal assertion in fullName
// stopped the run before notRun tests could start.
func (c *Console) Aborted(fullName string, notRun int) {
	c.println(c.stderr, red, fmt.Sprintf("%s Fatal assertion in %s; %s not run.", tagAborted, fullName, plural(notRun, "test")))
}

// Summary prints the tear-down banner and the final summary of res.
func (c *Console) Summary(res *results.Result) {
	c.Section("Global test environment tear-down")

	clr := green
	if res.Failed() {
		clr = red
	}
	c.println(c.stdout, clr, fmt.Sprintf("%s %d out of %d assertions failed. (%d ms total)",
		tagBanner, res.Failures, res.Assertions, millis(res.Duration)))

	failed := res.FailedTests()
	c.println(c.stdout, green, fmt.Sprintf("%s %s.", tagPassed, plural(len(res.Tests)-len(failed), "test")))
	if len(failed) == 0 {
		return
	}
	c.println(c.stderr, red, fmt.Sprintf("%s %s, listed below:", tagFailed, plural(len(failed), "test")))
	for _, t := range failed {
		c.println(c.stderr, red, fmt.Sprintf("%s %s", tagFailed, t.FullName()))
	}
}
