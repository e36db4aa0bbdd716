// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"

	"go.chromium.org/scruffy/errors/stack"
	"go.chromium.org/scruffy/internal/logging"
)

// Outcome summarizes one execution of a test.
type Outcome struct {
	// Counters covers the assertions evaluated by this execution only.
	Counters Counters
	// Fatal is set if a fatal assertion failed. The driver must not start any
	// further test of the run.
	Fatal bool
}

// Passed reports whether no assertion failed.
func (o Outcome) Passed() bool {
	return o.Counters.Failures == 0
}

// RunTest runs the body of t with a fresh State belonging to root, and
// blocks until the body returns, calls runtime.Goexit (fatal assertions do)
// or panics. A panic is recorded as a failed assertion.
//
// There is no timeout: a body that never returns blocks RunTest forever.
func RunTest(ctx context.Context, root *RunRoot, t TestInstance, out OutputStream) Outcome {
	s := root.NewTestState(t, out)
	ctx = NewContext(ctx, out)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			// recover returns nil when the body ended via runtime.Goexit.
			if val := recover(); val != nil {
				s.recordPanic(val, stack.New(1))
			}
		}()
		t.fn(ctx, s)
	}()
	<-done

	return Outcome{Counters: s.Counters(), Fatal: s.isFatal()}
}

// NewContext returns a context whose logs are reported to out, as is done
// for contexts passed to test bodies.
func NewContext(ctx context.Context, out OutputStream) context.Context {
	sink := logging.NewFuncSink(func(msg string) { out.Log(msg) })
	return logging.AttachLoggerNoPropagation(ctx, logging.NewSinkLogger(logging.LevelInfo, false, sink))
}

// ContextLog formats its arguments using default formatting and logs them to
// the test owning ctx.
func ContextLog(ctx context.Context, args ...interface{}) {
	logging.Info(ctx, args...)
}

// ContextLogf is similar to ContextLog but formats its arguments using
// fmt.Sprintf.
func ContextLogf(ctx context.Context, format string, args ...interface{}) {
	logging.Infof(ctx, format, args...)
}
