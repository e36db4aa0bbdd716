// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package stack_test

import (
	"regexp"
	"strings"
	"testing"

	"go.chromium.org/scruffy/errors/stack"
)

func TestStackString(t *testing.T) {
	s := stack.New(0)
	str := s.String()
	lines := strings.Split(str, "\n")
	if len(lines) == 0 {
		t.Fatal("Stack trace is empty")
	}
	re := regexp.MustCompile(`^\tat go\.chromium\.org/scruffy/errors/stack_test\.TestStackString \(stack_test\.go:\d+\)$`)
	if !re.MatchString(lines[0]) {
		t.Errorf("First frame is %q; want TestStackString", lines[0])
	}
}

func TestStackTruncated(t *testing.T) {
	var s stack.Stack
	var recurse func(n int)
	recurse = func(n int) {
		if n == 0 {
			s = stack.New(0)
			return
		}
		recurse(n - 1)
	}
	recurse(20)

	lines := strings.Split(s.String(), "\n")
	if last := lines[len(lines)-1]; last != "\t..." {
		t.Errorf("Last line is %q; want ellipsis", last)
	}
}

func helper() (stack.Location, bool) {
	return stack.Caller(1)
}

func TestCaller(t *testing.T) {
	loc, ok := helper()
	if !ok {
		t.Fatal("Caller failed")
	}
	if got := loc.FuncName(); got != "TestCaller" {
		t.Errorf("FuncName() = %q; want %q", got, "TestCaller")
	}
	if !strings.HasPrefix(loc.String(), "stack_test.go:") {
		t.Errorf("String() = %q; want stack_test.go:<line>", loc.String())
	}
}

func TestLocationUnknown(t *testing.T) {
	if got := (stack.Location{}).String(); got != "???" {
		t.Errorf("String() = %q; want %q", got, "???")
	}
}
