// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runner runs the tests registered with the testing package and
// reports their outcome.
package runner

import (
	"context"
	"fmt"
	"os"
	"sync"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"

	"go.chromium.org/scruffy/errors"
	"go.chromium.org/scruffy/internal/logging"
	"go.chromium.org/scruffy/internal/reporting"
	"go.chromium.org/scruffy/internal/timing"
	"go.chromium.org/scruffy/results"
	"go.chromium.org/scruffy/testing"
)

// testOutput receives the messages and errors of a single test. Errors are
// kept for the test's result and echoed to the console.
type testOutput struct {
	console *reporting.Console
	clk     clock.Clock

	mu     sync.Mutex
	errors []*results.Error
}

var _ testing.OutputStream = (*testOutput)(nil)

func (o *testOutput) Log(msg string) error {
	o.console.Log(msg)
	return nil
}

func (o *testOutput) Error(e *results.Error) error {
	e.Time = o.clk.Now()
	o.mu.Lock()
	o.errors = append(o.errors, e)
	o.mu.Unlock()
	o.console.Error(e)
	return nil
}

// countSuites returns the number of distinct suites tests belong to.
func countSuites(tests []testing.TestInstance) int {
	seen := make(map[string]struct{})
	for _, t := range tests {
		seen[t.Suite()] = struct{}{}
	}
	return len(seen)
}

// groupLen returns the number of consecutive tests starting at tests[i] that
// belong to the same suite.
func groupLen(tests []testing.TestInstance, i int) int {
	n := 1
	for i+n < len(tests) && tests[i+n].Suite() == tests[i].Suite() {
		n++
	}
	return n
}

// attachFrameworkLogger makes harness messages go to cfg.Stderr unless ctx
// already carries a logger.
func attachFrameworkLogger(ctx context.Context, cfg *Config) context.Context {
	if logging.HasLogger(ctx) {
		return ctx
	}
	level := logging.LevelInfo
	if cfg.Verbose {
		level = logging.LevelDebug
	}
	return logging.AttachLogger(ctx, logging.NewSinkLogger(level, cfg.LogTime, logging.NewWriterSink(cfg.Stderr)))
}

// Run runs all tests of cfg.Registry in registration order and reports them on
// the console. A test failing a fatal assertion aborts the run. A non-nil
// error is returned only if cfg is invalid or result files could not be
// written; failing tests are reported through the returned Result.
func Run(ctx context.Context, cfg *Config) (*results.Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	ctx = attachFrameworkLogger(ctx, cfg)

	clk := cfg.Clock
	console := reporting.NewConsole(cfg.Stdout, cfg.Stderr, cfg.Color.Enabled(cfg.Stdout))
	tests := cfg.Registry.AllTests()

	tl := timing.NewLog(clk)
	runStage := tl.StartTop("run")

	res := &results.Result{
		ID:    uuid.NewString(),
		Start: clk.Now(),
		Tests: make([]*results.TestResult, 0, len(tests)),
	}
	logging.Debugf(ctx, "Starting run %s with %d tests", res.ID, len(tests))

	root := testing.NewRunRoot()
	console.Start(len(tests), countSuites(tests))

	groupStart, groupSize := res.Start, 0
	for i, t := range tests {
		if i == 0 || t.Suite() != tests[i-1].Suite() {
			groupStart = clk.Now()
			groupSize = groupLen(tests, i)
			console.SuiteStart(t.Suite(), groupSize)
		}

		tr := runOne(ctx, clk, root, t, console, runStage)
		res.Tests = append(res.Tests, tr)

		last := i == len(tests)-1 || tests[i+1].Suite() != t.Suite()
		if last || tr.Fatal {
			console.SuiteEnd(t.Suite(), groupSize, clk.Since(groupStart))
		}

		if tr.Fatal {
			rest := tests[i+1:]
			res.Aborted = true
			for _, nt := range rest {
				res.NotRun = append(res.NotRun, nt.FullName())
			}
			console.Aborted(t.FullName(), len(rest))
			break
		}
	}

	totals := root.Totals()
	res.Assertions = totals.Assertions
	res.Failures = totals.Failures

	runStage.End()
	res.Duration = clk.Since(res.Start)
	console.Summary(res)

	if cfg.ResultsDir != "" {
		if err := reporting.WriteResultFiles(ctx, cfg.ResultsDir, res, tl); err != nil {
			return res, errors.Wrap(err, "failed to write result files")
		}
		logging.Infof(ctx, "Results saved to %s", cfg.ResultsDir)
	}
	return res, nil
}

// runOne runs t and returns its result.
func runOne(ctx context.Context, clk clock.Clock, root *testing.RunRoot, t testing.TestInstance,
	console *reporting.Console, parent *timing.Stage) *results.TestResult {
	console.TestStart(t.FullName())
	stage := parent.StartChild(t.FullName())
	start := clk.Now()

	out := &testOutput{console: console, clk: clk}
	outcome := testing.RunTest(ctx, root, t, out)
	stage.End()

	tr := &results.TestResult{
		Suite:      t.Suite(),
		Name:       t.Name(),
		Assertions: outcome.Counters.Assertions,
		Failures:   outcome.Counters.Failures,
		Fatal:      outcome.Fatal,
		Start:      start,
		Duration:   clk.Since(start),
		Errors:     out.errors,
	}
	console.TestEnd(tr)
	return tr
}

// RunAll runs every test registered with testing.AddTest using the default
// configuration and returns the outcome. The caller decides the exit status,
// typically from Result.ExitCode.
func RunAll() *results.Result {
	res, err := Run(context.Background(), NewConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "scruffy:", err)
	}
	return res
}
