// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/scruffy/internal/logging"
)

// memorySink is a Sink that accumulates logs to an in-memory buffer.
type memorySink struct {
	mu   sync.Mutex
	msgs []string
}

func (ms *memorySink) Log(msg string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.msgs = append(ms.msgs, msg)
}

func (ms *memorySink) Get() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.msgs...)
}

func TestSinkLoggerLevel(t *testing.T) {
	var sink memorySink
	logger := logging.NewSinkLogger(logging.LevelInfo, false, &sink)
	logger.Log(logging.LevelInfo, time.Time{}, "foo")
	logger.Log(logging.LevelDebug, time.Time{}, "bar")

	if diff := cmp.Diff(sink.Get(), []string{"foo"}); diff != "" {
		t.Errorf("Messages mismatch (-got +want):\n%s", diff)
	}
}

func TestSinkLoggerTimestamp(t *testing.T) {
	var sink memorySink
	logger := logging.NewSinkLogger(logging.LevelInfo, true, &sink)
	logger.Log(logging.LevelInfo, time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC), "foo")

	want := []string{"2026-01-02T03:04:05.000006Z foo"}
	if diff := cmp.Diff(sink.Get(), want); diff != "" {
		t.Errorf("Messages mismatch (-got +want):\n%s", diff)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := logging.NewWriterSink(&buf)
	sink.Log("foo")
	sink.Log("bar")
	if got, want := buf.String(), "foo\nbar\n"; got != want {
		t.Errorf("Got %q; want %q", got, want)
	}
}

func TestContextPropagation(t *testing.T) {
	var parent, child memorySink
	ctx := logging.AttachLogger(context.Background(), logging.NewSinkLogger(logging.LevelDebug, false, &parent))
	ctx = logging.AttachLogger(ctx, logging.NewSinkLogger(logging.LevelDebug, false, &child))

	logging.Info(ctx, "a", 1)
	logging.Debugf(ctx, "b%d", 2)

	want := []string{"a1", "b2"}
	if diff := cmp.Diff(child.Get(), want); diff != "" {
		t.Errorf("Child messages mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(parent.Get(), want); diff != "" {
		t.Errorf("Parent messages mismatch (-got +want):\n%s", diff)
	}
}

func TestContextNoPropagation(t *testing.T) {
	var parent, child memorySink
	ctx := logging.AttachLogger(context.Background(), logging.NewSinkLogger(logging.LevelDebug, false, &parent))
	ctx = logging.AttachLoggerNoPropagation(ctx, logging.NewSinkLogger(logging.LevelDebug, false, &child))

	logging.Infof(ctx, "only %s", "child")

	if diff := cmp.Diff(child.Get(), []string{"only child"}); diff != "" {
		t.Errorf("Child messages mismatch (-got +want):\n%s", diff)
	}
	if got := parent.Get(); len(got) != 0 {
		t.Errorf("Parent got %q; want nothing", got)
	}
}

func TestNoLogger(t *testing.T) {
	ctx := context.Background()
	if logging.HasLogger(ctx) {
		t.Error("HasLogger = true for a bare context")
	}
	logging.Info(ctx, "dropped") // must not panic
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want logging.Level
		ok   bool
	}{
		{"debug", logging.LevelDebug, true},
		{"INFO", logging.LevelInfo, true},
		{"", logging.LevelInfo, true},
		{"trace", logging.LevelInfo, false},
	} {
		got, err := logging.ParseLevel(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseLevel(%q) error = %v; want ok=%v", tc.in, err, tc.ok)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
