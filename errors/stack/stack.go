// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package stack captures and formats stack traces and call-site locations.
// Test code should not use it directly; failures are reported through
// testing.State and errors built with the errors package.
package stack

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	maxDepth = 8 // maximum number of stack frames to record

	ellipsis = "\t..." // trailing marker line added if stack trace is too long
)

// Stack holds a snapshot of program counters.
type Stack []uintptr

// New captures a stack trace. skip specifies the number of frames to skip from
// a stack trace. skip=0 records stack.New call as the innermost frame.
func New(skip int) Stack {
	pc := make([]uintptr, maxDepth+1)
	pc = pc[:runtime.Callers(skip+2, pc)]
	return Stack(pc)
}

// String formats a stack trace to a human-friendly text.
func (s Stack) String() string {
	var lines []string

	// runtime.CallersFrames expands inlined frames that runtime.Callers folds.
	cf := runtime.CallersFrames(s)
	for {
		f, more := cf.Next()
		lines = append(lines, fmt.Sprintf("\tat %s (%s:%d)", f.Function, filepath.Base(f.File), f.Line))
		if !more {
			break
		} else if len(lines) >= maxDepth {
			lines = append(lines, ellipsis)
			break
		}
	}
	return strings.Join(lines, "\n")
}

// Location identifies a source position.
type Location struct {
	File     string // absolute path of the source file
	Line     int
	Function string // fully-qualified function name, e.g. "pkg.(*T).Method"
}

// String returns "file.go:123" using the base name of File.
func (l Location) String() string {
	if l.File == "" {
		return "???"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}

// FuncName returns the unqualified name of Function, e.g. "Method" for
// "pkg.(*T).Method".
func (l Location) FuncName() string {
	name := l.Function
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Caller returns the location of a frame on the calling goroutine's stack.
// skip=0 is the caller of Caller. The second result is false if the stack is
// not that deep.
func Caller(skip int) (Location, bool) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}, false
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc, true
}
