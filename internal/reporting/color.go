// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"io"
	"os"

	"golang.org/x/term"

	"go.chromium.org/scruffy/errors"
)

// ANSI escape sequences used on the console.
const (
	red   = "\033[31m"
	green = "\033[32m"
	cyan  = "\033[36m"
	reset = "\033[0m"
)

// ColorMode selects when console output is colored.
type ColorMode string

const (
	// ColorAlways colors output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever never colors output.
	ColorNever ColorMode = "never"
	// ColorAuto colors output if it goes to a terminal and the NO_COLOR
	// environment variable is not set.
	ColorAuto ColorMode = "auto"
)

// ParseColorMode converts a flag or config value to a ColorMode.
// An empty string selects ColorAlways.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAlways, ColorNever, ColorAuto:
		return m, nil
	case "":
		return ColorAlways, nil
	}
	return "", errors.Errorf("invalid color mode %q (want always, never or auto)", s)
}

// String implements flag.Value.
func (m *ColorMode) String() string { return string(*m) }

// Set implements flag.Value.
func (m *ColorMode) Set(s string) error {
	mode, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Enabled reports whether output written to w should be colored.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorNever:
		return false
	case ColorAuto:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
	return true
}
