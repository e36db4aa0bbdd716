// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"go.chromium.org/scruffy/results"
)

// JUnitXMLFilename is a file name to be used with WriteJUnitXMLResults.
const JUnitXMLFilename = "results.xml"

// testSuites is the top level XML element of JUnit result.
type testSuites struct {
	XMLName    xml.Name
	Properties []*property  `xml:"properties>property,omitempty"`
	TestSuite  []*testSuite `xml:"testsuite"`

	Tests    int `xml:"tests,attr"`
	Failures int `xml:"failures,attr"`
	Skipped  int `xml:"skipped,attr"`
}

// property is a name/value pair attached to the run.
type property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// testSuite is an XML element in JUnit result, holding the tests of one
// suite. Errors are not distinguished from failures.
type testSuite struct {
	Name     string      `xml:"name,attr"`
	TestCase []*testCase `xml:"testcase"`

	Tests    int `xml:"tests,attr"`
	Failures int `xml:"failures,attr"`
	Skipped  int `xml:"skipped,attr"`
}

// testCase is an element in JUnit XML test result.
type testCase struct {
	Name       string `xml:"name,attr"`
	ClassName  string `xml:"classname,attr"`
	Status     string `xml:"status,attr"`              // run or notrun
	Result     string `xml:"result,attr"`              // more detailed result
	Timestamp  string `xml:"timestamp,attr,omitempty"` // start time, in ISO8601
	Time       string `xml:"time,attr,omitempty"`      // duration, in seconds (with a decimal point)
	Assertions int    `xml:"assertions,attr"`

	Failure []*failure `xml:"failure,omitempty"`
	Skipped *skipped   `xml:"skipped,omitempty"`
}

// failure is an element in JUnit XML test result, representing a failed
// assertion.
type failure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Details string `xml:",cdata"`
}

// skipped is an element in JUnit XML test result, representing a test that
// was not run.
type skipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// splitFullName splits "suite.name" at its last dot.
func splitFullName(fullName string) (suite, name string) {
	i := strings.LastIndexByte(fullName, '.')
	if i < 0 {
		return "", fullName
	}
	return fullName[:i], fullName[i+1:]
}

// suiteFor returns the element for suite, appending a new one unless the last
// element already holds it.
func (s *testSuites) suiteFor(suite string) *testSuite {
	if n := len(s.TestSuite); n > 0 && s.TestSuite[n-1].Name == suite {
		return s.TestSuite[n-1]
	}
	ts := &testSuite{Name: suite}
	s.TestSuite = append(s.TestSuite, ts)
	return ts
}

// buildJUnitXML converts res to the JUnit XML document.
func buildJUnitXML(res *results.Result) *testSuites {
	suites := &testSuites{
		XMLName: xml.Name{Local: "testsuites"},
	}
	if res.ID != "" {
		suites.Properties = append(suites.Properties, &property{Name: "run_id", Value: res.ID})
	}

	for _, r := range res.Tests {
		// Decimal point is needed for distinguishing the duration from
		// nanoseconds notation, e.g. "1.0" for one second.
		tc := &testCase{
			Name:       r.Name,
			ClassName:  r.Suite,
			Status:     "run",
			Result:     "completed",
			Timestamp:  r.Start.UTC().Format(time.RFC3339),
			Time:       fmt.Sprintf("%.1f", r.Duration.Seconds()),
			Assertions: r.Assertions,
		}
		if r.Fatal {
			tc.Result = "aborted"
		}
		for _, e := range r.Errors {
			tc.Failure = append(tc.Failure, &failure{
				Message: e.Reason,
				Details: fmt.Sprintf("%s:%d\n%s", e.File, e.Line, e.Stack),
			})
		}
		ts := suites.suiteFor(r.Suite)
		ts.TestCase = append(ts.TestCase, tc)
		ts.Tests++
		suites.Tests++
		if !r.Passed() {
			ts.Failures++
			suites.Failures++
		}
	}

	for _, full := range res.NotRun {
		suite, name := splitFullName(full)
		ts := suites.suiteFor(suite)
		ts.TestCase = append(ts.TestCase, &testCase{
			Name:      name,
			ClassName: suite,
			Status:    "notrun",
			Result:    "skipped",
			Skipped:   &skipped{Message: "run aborted by a fatal assertion"},
		})
		ts.Tests++
		ts.Skipped++
		suites.Tests++
		suites.Skipped++
	}
	return suites
}

// WriteJUnitXMLResults saves res to path in the JUnit XML format.
func WriteJUnitXMLResults(path string, res *results.Result) error {
	data, err := xml.MarshalIndent(buildJUnitXML(res), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0644)
}
