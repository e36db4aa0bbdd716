// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/scruffy/results"
)

var testStart = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func abortedResult() *results.Result {
	return &results.Result{
		ID:    "8d7e0b4c-6c1e-4b7b-9f44-2a0d1d5b0c11",
		Start: testStart,
		Tests: []*results.TestResult{
			{Suite: "math", Name: "add", Assertions: 2, Start: testStart, Duration: 1500 * time.Millisecond},
			{
				Suite:      "strings",
				Name:       "fatal",
				Assertions: 1,
				Failures:   1,
				Fatal:      true,
				Start:      testStart,
				Errors: []*results.Error{
					{Reason: "Assertion a == b failed, got 'x' != 'y'", File: "/src/str_test.go", Line: 9, Fatal: true},
				},
			},
		},
		Assertions: 3,
		Failures:   1,
		Aborted:    true,
		NotRun:     []string{"strings.after", "zz.last"},
	}
}

func TestBuildJUnitXML(t *testing.T) {
	got := buildJUnitXML(abortedResult())
	want := &testSuites{
		XMLName:    xml.Name{Local: "testsuites"},
		Properties: []*property{{Name: "run_id", Value: "8d7e0b4c-6c1e-4b7b-9f44-2a0d1d5b0c11"}},
		TestSuite: []*testSuite{
			{
				Name: "math",
				TestCase: []*testCase{{
					Name: "add", ClassName: "math", Status: "run", Result: "completed",
					Timestamp: "2026-10-18T12:00:00Z", Time: "1.5", Assertions: 2,
				}},
				Tests: 1,
			},
			{
				Name: "strings",
				TestCase: []*testCase{
					{
						Name: "fatal", ClassName: "strings", Status: "run", Result: "aborted",
						Timestamp: "2026-10-18T12:00:00Z", Time: "0.0", Assertions: 1,
						Failure: []*failure{{
							Message: "Assertion a == b failed, got 'x' != 'y'",
							Details: "/src/str_test.go:9\n",
						}},
					},
					{
						Name: "after", ClassName: "strings", Status: "notrun", Result: "skipped",
						Skipped: &skipped{Message: "run aborted by a fatal assertion"},
					},
				},
				Tests:    2,
				Failures: 1,
				Skipped:  1,
			},
			{
				Name: "zz",
				TestCase: []*testCase{{
					Name: "last", ClassName: "zz", Status: "notrun", Result: "skipped",
					Skipped: &skipped{Message: "run aborted by a fatal assertion"},
				}},
				Tests:   1,
				Skipped: 1,
			},
		},
		Tests:    4,
		Failures: 1,
		Skipped:  2,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("buildJUnitXML mismatch (-got +want):\n%s", diff)
	}
}

func TestWriteJUnitXMLResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), JUnitXMLFilename)
	if err := WriteJUnitXMLResults(path, abortedResult()); err != nil {
		t.Fatal("WriteJUnitXMLResults failed: ", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), xml.Header) {
		t.Errorf("%s does not start with the XML header", path)
	}

	var got testSuites
	if err := xml.Unmarshal(b, &got); err != nil {
		t.Fatal("Unmarshal failed: ", err)
	}
	if got.Tests != 4 || got.Failures != 1 || got.Skipped != 2 || len(got.TestSuite) != 3 {
		t.Errorf("Got tests=%d failures=%d skipped=%d suites=%d; want 4, 1, 2, 3",
			got.Tests, got.Failures, got.Skipped, len(got.TestSuite))
	}
}

func TestSplitFullName(t *testing.T) {
	for _, tc := range []struct{ in, suite, name string }{
		{"scruffy.equals", "scruffy", "equals"},
		{"a.b.c", "a.b", "c"},
		{"bare", "", "bare"},
	} {
		suite, name := splitFullName(tc.in)
		if suite != tc.suite || name != tc.name {
			t.Errorf("splitFullName(%q) = (%q, %q); want (%q, %q)", tc.in, suite, name, tc.suite, tc.name)
		}
	}
}
