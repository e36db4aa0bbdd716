// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testutil

import (
	"context"
	gotesting "testing"

	"go.chromium.org/scruffy/testing"
)

// NewRegistry returns a registry holding tests in the given order. A fatal
// error is reported to t if any of them is invalid.
func NewRegistry(t gotesting.TB, tests ...*testing.Test) *testing.Registry {
	t.Helper()
	reg := testing.NewRegistry(0)
	for _, tst := range tests {
		if err := reg.AddTest(tst); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

// Body returns a test body that does nothing but evaluate n passing
// assertions.
func Body(n int) testing.TestFunc {
	return func(ctx context.Context, s *testing.State) {
		for i := 0; i < n; i++ {
			s.ExpectTrue(true)
		}
	}
}
