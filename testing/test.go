// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"

	"go.chromium.org/scruffy/errors"
)

// TestFunc is the body of a test.
type TestFunc func(ctx context.Context, s *State)

// Test declares a test to be registered with AddTest.
type Test struct {
	// Suite is the name of the group the test belongs to, e.g. "scruffy".
	Suite string
	// Name is the name of the test within its suite, e.g. "equals".
	Name string
	// Func is the test body.
	Func TestFunc
}

// TestInstance is a registered test. It is created by copying a Test at
// registration and cannot be modified afterwards.
type TestInstance struct {
	suite string
	name  string
	fn    TestFunc
}

// newTestInstance validates t and returns a registered copy of it.
func newTestInstance(t *Test) (TestInstance, error) {
	if t == nil {
		return TestInstance{}, errors.New("nil test")
	}
	if t.Suite == "" || t.Name == "" {
		return TestInstance{}, errors.Errorf("test %q.%q: suite and name must be non-empty", t.Suite, t.Name)
	}
	if t.Func == nil {
		return TestInstance{}, errors.Errorf("test %s.%s: Func is nil", t.Suite, t.Name)
	}
	return TestInstance{suite: t.Suite, name: t.Name, fn: t.Func}, nil
}

// Suite returns the suite name of the test.
func (t TestInstance) Suite() string { return t.suite }

// Name returns the name of the test within its suite.
func (t TestInstance) Name() string { return t.name }

// FullName returns "suite.name".
func (t TestInstance) FullName() string { return t.suite + "." + t.name }

func (t TestInstance) String() string { return t.FullName() }
