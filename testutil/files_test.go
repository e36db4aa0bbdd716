// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteReadFiles(t *testing.T) {
	files := map[string]string{
		"results.json":      "{}",
		"sub/timing.json":   "[]",
		"sub/deep/file.txt": "text",
	}
	dir := t.TempDir()
	if err := WriteFiles(dir, files); err != nil {
		t.Fatal("WriteFiles failed: ", err)
	}
	got, err := ReadFiles(dir)
	if err != nil {
		t.Fatal("ReadFiles failed: ", err)
	}
	if diff := cmp.Diff(got, files); diff != "" {
		t.Errorf("ReadFiles mismatch (-got +want):\n%s", diff)
	}
}
