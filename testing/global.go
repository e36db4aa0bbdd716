// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"fmt"
	"io"
	"os"
)

var globalRegistry *Registry // singleton, initialized on first use

// Replaced in unit tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// GlobalRegistry returns the registry filled by AddTest.
func GlobalRegistry() *Registry {
	if globalRegistry == nil {
		globalRegistry = NewRegistry(DefaultCapacity)
	}
	return globalRegistry
}

// AddTest adds test t to the global registry. It is meant to be called from
// init functions.
//
// Registration errors are configuration errors that cannot be recovered
// from: AddTest prints the error and terminates the process with status 1
// before any test runs.
func AddTest(t *Test) {
	if err := GlobalRegistry().AddTest(t); err != nil {
		fmt.Fprintf(stderr, "scruffy: %v\n", err)
		exit(1)
	}
}

// SetGlobalRegistryForTesting temporarily sets reg as the global registry.
// The caller must call the returned function later to restore the original
// registry. This is intended for unit tests that register tests globally but
// don't want to affect subsequent unit tests.
func SetGlobalRegistryForTesting(reg *Registry) (restore func()) {
	orig := globalRegistry
	globalRegistry = reg
	return func() {
		globalRegistry = orig
	}
}
