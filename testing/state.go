// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"sync"
	"time"

	"go.chromium.org/scruffy/errors/stack"
	"go.chromium.org/scruffy/internal/expr"
	"go.chromium.org/scruffy/results"
)

const (
	floatEpsilon  = 1e-5 // tolerance of ExpectFloatEq
	doubleEpsilon = 1e-9 // tolerance of ExpectDoubleEq

	nullString = "NULL" // how a null string operand is printed
)

// State is passed to a test body. It counts the assertions the test evaluates
// and reports failures to the test's output.
//
// A State is created right before its test starts; its counters cover that
// test only, while the RunRoot it belongs to keeps the run-wide totals.
type State struct {
	root *RunRoot
	test TestInstance
	out  OutputStream

	mu     sync.Mutex // protects counts and fatal
	counts Counters
	fatal  bool
}

// Suite returns the suite name of the running test.
func (s *State) Suite() string { return s.test.Suite() }

// Name returns the name of the running test within its suite.
func (s *State) Name() string { return s.test.Name() }

// Counters returns the assertion counters of the running test.
func (s *State) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts
}

// HasError reports whether any assertion of the running test has failed.
func (s *State) HasError() bool {
	return s.Counters().Failures > 0
}

func (s *State) isFatal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatal
}

// Log formats its arguments using default formatting and logs them.
func (s *State) Log(args ...interface{}) {
	s.out.Log(fmt.Sprint(args...))
}

// Logf is similar to Log but formats its arguments using fmt.Sprintf.
func (s *State) Logf(format string, args ...interface{}) {
	s.out.Log(fmt.Sprintf(format, args...))
}

// count records the evaluation of one assertion.
func (s *State) count(failed bool) {
	s.mu.Lock()
	s.counts.Assertions++
	if failed {
		s.counts.Failures++
	}
	s.mu.Unlock()
	s.root.count(failed)
}

// report records a failed assertion raised at loc.
func (s *State) report(loc stack.Location, fatal bool, reason string) {
	s.count(true)
	if fatal {
		s.mu.Lock()
		s.fatal = true
		s.mu.Unlock()
	}
	s.out.Error(&results.Error{
		Time:   time.Now(),
		Reason: reason,
		File:   loc.File,
		Line:   loc.Line,
		Fatal:  fatal,
	})
}

// recordPanic records a panic in the test body as a failed assertion.
func (s *State) recordPanic(val interface{}, stk stack.Stack) {
	s.count(true)
	s.out.Error(&results.Error{
		Time:   time.Now(),
		Reason: fmt.Sprint("Panic: ", val),
		Stack:  stk.String(),
	})
}

// callSite returns the location of the test code that called the assertion
// method which called callSite, together with the source text of the n
// operands it was given. The operand list is nil if the source is not
// available. It must be called directly from an exported assertion method.
func callSite(n int) (stack.Location, []string) {
	self, _ := stack.Caller(1)
	site, ok := stack.Caller(2)
	if !ok {
		return stack.Location{}, nil
	}
	args, ok := expr.Operands(site.File, site.Line, self.FuncName())
	if !ok || len(args) != n {
		return site, nil
	}
	return site, args
}

// operand returns the source text of the i-th operand, or fallback if it is
// unknown.
func operand(args []string, i int, fallback interface{}) string {
	if args == nil {
		return fmt.Sprint(fallback)
	}
	return args[i]
}

// isNull reports whether v is nil or a nil pointer, map, slice, channel,
// function or interface.
func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// ExpectNull checks that v is nil.
func (s *State) ExpectNull(v interface{}) {
	if isNull(v) {
		s.count(false)
		return
	}
	loc, args := callSite(1)
	s.report(loc, false, fmt.Sprintf("Expected %s == nil, got %v", operand(args, 0, "value"), v))
}

// ExpectNotNull checks that v is not nil.
func (s *State) ExpectNotNull(v interface{}) {
	if !isNull(v) {
		s.count(false)
		return
	}
	loc, args := callSite(1)
	s.report(loc, false, fmt.Sprintf("Expected %s != nil", operand(args, 0, "value")))
}

// ExpectTrue checks that cond is true.
func (s *State) ExpectTrue(cond bool) {
	if cond {
		s.count(false)
		return
	}
	loc, args := callSite(1)
	s.report(loc, false, fmt.Sprintf("Expected (%s) == true", operand(args, 0, cond)))
}

// ExpectFalse checks that cond is false.
func (s *State) ExpectFalse(cond bool) {
	if !cond {
		s.count(false)
		return
	}
	loc, args := callSite(1)
	s.report(loc, false, fmt.Sprintf("Expected (%s) == false", operand(args, 0, cond)))
}

// toInt64 widens an integer of any kind, including named integer types used
// as enums, to int64.
func toInt64(v interface{}) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), true
	}
	return 0, false
}

// ExpectEq checks that two integers are equal. Both operands are compared and
// reported as int64. Operands that are not integers fail the assertion.
func (s *State) ExpectEq(actual, expected interface{}) {
	a, aok := toInt64(actual)
	e, eok := toInt64(expected)
	if aok && eok && a == e {
		s.count(false)
		return
	}
	loc, args := callSite(2)
	an, en := operand(args, 0, actual), operand(args, 1, expected)
	if !aok || !eok {
		s.report(loc, false, fmt.Sprintf("Expected %s == %s, got unsupported operand types %T and %T", an, en, actual, expected))
		return
	}
	s.report(loc, false, fmt.Sprintf("Expected %s == %s, got %d != %d", an, en, a, e))
}

// ExpectFloatEq checks that two single-precision floats differ by at most
// 1e-5.
func (s *State) ExpectFloatEq(actual, expected float32) {
	const eps float32 = floatEpsilon
	diff := float32(math.Abs(float64(actual - expected)))
	if diff <= eps {
		s.count(false)
		return
	}
	loc, args := callSite(2)
	s.report(loc, false, fmt.Sprintf("Expected %s == %s, got %f != %f (diff %f > %g)",
		operand(args, 0, actual), operand(args, 1, expected), actual, expected, diff, eps))
}

// ExpectDoubleEq checks that two double-precision floats differ by at most
// 1e-9.
func (s *State) ExpectDoubleEq(actual, expected float64) {
	diff := math.Abs(actual - expected)
	if diff <= doubleEpsilon {
		s.count(false)
		return
	}
	loc, args := callSite(2)
	s.report(loc, false, fmt.Sprintf("Expected %s == %s, got %.9f != %.9f (diff %.9f > %g)",
		operand(args, 0, actual), operand(args, 1, expected), actual, expected, diff, doubleEpsilon))
}

// nullableString interprets a string operand. v may be a string, a *string,
// a []byte or nil; nil pointers and slices are null.
func nullableString(v interface{}) (str string, null, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", true, true
	case string:
		return x, false, true
	case *string:
		if x == nil {
			return "", true, true
		}
		return *x, false, true
	case []byte:
		if x == nil {
			return "", true, true
		}
		return string(x), false, true
	}
	return "", false, false
}

// compareStrings evaluates the string equality predicate: two nulls are
// equal, a null and a non-null are not, and otherwise contents are compared
// byte-wise. It returns printable forms of both operands.
func compareStrings(actual, expected interface{}) (equal bool, a, e string) {
	as, anull, aok := nullableString(actual)
	es, enull, eok := nullableString(expected)
	printable := func(s string, null, ok bool, v interface{}) string {
		switch {
		case !ok:
			return fmt.Sprintf("%v (unsupported %T)", v, v)
		case null:
			return nullString
		}
		return s
	}
	a, e = printable(as, anull, aok, actual), printable(es, enull, eok, expected)
	if !aok || !eok {
		return false, a, e
	}
	if anull || enull {
		return anull == enull, a, e
	}
	return as == es, a, e
}

// ExpectStrEq checks that two strings are equal.
func (s *State) ExpectStrEq(actual, expected interface{}) {
	equal, a, e := compareStrings(actual, expected)
	if equal {
		s.count(false)
		return
	}
	loc, args := callSite(2)
	s.report(loc, false, fmt.Sprintf("Expected %s == %s, got '%s' != '%s'",
		operand(args, 0, "actual"), operand(args, 1, "expected"), a, e))
}

// AssertStrEq is similar to ExpectStrEq, but a mismatch is fatal: the test
// ends immediately and no further test of the run is started. Use it when
// continuing after a mismatch is unsafe, e.g. to guard checks that rely on
// the compared value.
func (s *State) AssertStrEq(actual, expected interface{}) {
	equal, a, e := compareStrings(actual, expected)
	if equal {
		s.count(false)
		return
	}
	loc, args := callSite(2)
	s.report(loc, true, fmt.Sprintf("Assertion %s == %s failed, got '%s' != '%s'",
		operand(args, 0, "actual"), operand(args, 1, "expected"), a, e))
	runtime.Goexit()
}
