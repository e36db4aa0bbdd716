// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package timing_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"

	"go.chromium.org/scruffy/internal/timing"
)

func TestStageDuration(t *testing.T) {
	clk := fakeclock.NewFakeClock(time.Unix(100, 0))
	l := timing.NewLog(clk)

	run := l.StartTop("run")
	test := run.StartChild("scruffy.equals")
	clk.Increment(3 * time.Millisecond)
	if got, want := test.Duration(), 3*time.Millisecond; got != want {
		t.Errorf("Open stage Duration() = %v; want %v", got, want)
	}
	test.End()
	clk.Increment(2 * time.Millisecond)
	run.End()

	if got, want := test.Duration(), 3*time.Millisecond; got != want {
		t.Errorf("Test Duration() = %v; want %v", got, want)
	}
	if got, want := run.Duration(), 5*time.Millisecond; got != want {
		t.Errorf("Run Duration() = %v; want %v", got, want)
	}
}

func TestEndClosesChildren(t *testing.T) {
	clk := fakeclock.NewFakeClock(time.Unix(0, 0))
	l := timing.NewLog(clk)
	run := l.StartTop("run")
	child := run.StartChild("child")
	clk.Increment(time.Second)
	run.End()

	if child.EndTime.IsZero() {
		t.Error("Child stage was not ended")
	}
	if c := run.StartChild("late"); c != nil {
		t.Error("StartChild on an ended stage returned non-nil")
	}
	var nilStage *timing.Stage
	nilStage.End() // must not panic
}

func TestWritePretty(t *testing.T) {
	clk := fakeclock.NewFakeClock(time.Unix(0, 0))
	l := timing.NewLog(clk)
	run := l.StartTop("run")
	a := run.StartChild("s.a")
	clk.Increment(time.Second)
	a.End()
	b := run.StartChild("s.b")
	clk.Increment(2 * time.Second)
	b.End()
	run.End()
	other := l.StartTop("other")
	other.End()

	var buf bytes.Buffer
	if err := l.WritePretty(&buf); err != nil {
		t.Fatal("WritePretty failed: ", err)
	}
	want := `[[3.000, "run", [
         [1.000, "s.a"],
         [2.000, "s.b"]]],
 [0.000, "other"]]
`
	if got := buf.String(); got != want {
		t.Errorf("WritePretty wrote:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	clk := fakeclock.NewFakeClock(time.Unix(0, 0).UTC())
	l := timing.NewLog(clk)
	if !l.Empty() {
		t.Error("New log is not empty")
	}
	l.StartTop("run").End()

	b, err := json.Marshal(l)
	if err != nil {
		t.Fatal("Marshal failed: ", err)
	}
	var got struct {
		Stages []struct {
			Name string `json:"name"`
		} `json:"stages"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal("Unmarshal failed: ", err)
	}
	if len(got.Stages) != 1 || got.Stages[0].Name != "run" {
		t.Errorf("Marshaled %s; want one stage named run", b)
	}
}
