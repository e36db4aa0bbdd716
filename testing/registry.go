// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"golang.org/x/exp/slices"

	"go.chromium.org/scruffy/errors"
)

// DefaultCapacity is the number of tests a registry holds unless configured
// otherwise.
const DefaultCapacity = 300

// Registry is an ordered, append-only list of tests with a fixed capacity.
// It is filled serially during program initialization and only read
// afterwards, so it does not synchronize access.
type Registry struct {
	capacity int
	tests    []TestInstance
}

// NewRegistry returns an empty registry holding at most capacity tests.
// A non-positive capacity means DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{capacity: capacity}
}

// AddTest appends a copy of t to the registry. It fails if t is malformed or
// the registry is full; a test that cannot be registered would otherwise
// silently never run.
func (r *Registry) AddTest(t *Test) error {
	ti, err := newTestInstance(t)
	if err != nil {
		return err
	}
	if len(r.tests) >= r.capacity {
		return errors.Errorf("test registry full (capacity %d); cannot register %s", r.capacity, ti.FullName())
	}
	r.tests = append(r.tests, ti)
	return nil
}

// AllTests returns the registered tests in registration order.
func (r *Registry) AllTests() []TestInstance {
	return slices.Clone(r.tests)
}

// Len returns the number of registered tests.
func (r *Registry) Len() int { return len(r.tests) }

// Cap returns the capacity of the registry.
func (r *Registry) Cap() int { return r.capacity }
