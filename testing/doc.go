// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testing lets test programs declare test cases anywhere and have
// them collected without a central list.
//
// A test registers itself from an init function:
//
//	func init() {
//		testing.AddTest(&testing.Test{
//			Suite: "scruffy",
//			Name:  "equals",
//			Func:  Equals,
//		})
//	}
//
//	func Equals(ctx context.Context, s *testing.State) {
//		s.ExpectEq(1, 1)
//	}
//
// Registered tests are run by the runner package in registration order.
//
// # Registration order
//
// Go runs the init functions of a package in the order its files are given
// to the compiler (the go tool sorts them by file name), and in source order
// within a file; a package is initialized after every package it imports.
// Registration order is thus deterministic for a given build, but tests
// spread over several packages run in package initialization order, which
// test authors cannot otherwise control. Tests are never sorted, grouped or
// deduplicated by the harness.
//
// # Assertions
//
// Assertions are methods of State. Expect* methods record a failure and let
// the test continue. AssertStrEq records a failure and aborts the whole run.
// Diagnostics quote the source text of the operands when the test's source
// file can be read at run time; otherwise only runtime values are printed.
package testing
