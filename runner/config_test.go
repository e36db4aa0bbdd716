// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"flag"
	"io"
	"path/filepath"
	gotesting "testing"

	"github.com/stretchr/testify/require"

	"go.chromium.org/scruffy/internal/reporting"
	"go.chromium.org/scruffy/testing"
	"go.chromium.org/scruffy/testutil"
)

func TestConfigLoadFile(t *gotesting.T) {
	dir := t.TempDir()
	require.NoError(t, testutil.WriteFiles(dir, map[string]string{
		"full.yaml":     "color: auto\nresultsDir: /tmp/out\nverbose: true\nlogTime: true\n",
		"partial.yaml":  "verbose: true\n",
		"unknown.yaml":  "colour: auto\n",
		"badcolor.yaml": "color: rainbow\n",
	}))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFile(filepath.Join(dir, "full.yaml")))
	require.Equal(t, reporting.ColorAuto, cfg.Color)
	require.Equal(t, "/tmp/out", cfg.ResultsDir)
	require.True(t, cfg.Verbose)
	require.True(t, cfg.LogTime)

	cfg = NewConfig()
	cfg.ResultsDir = "/keep"
	require.NoError(t, cfg.LoadFile(filepath.Join(dir, "partial.yaml")))
	require.Equal(t, reporting.ColorAlways, cfg.Color)
	require.Equal(t, "/keep", cfg.ResultsDir)

	require.Error(t, NewConfig().LoadFile(filepath.Join(dir, "unknown.yaml")))
	require.Error(t, NewConfig().LoadFile(filepath.Join(dir, "badcolor.yaml")))
	require.Error(t, NewConfig().LoadFile(filepath.Join(dir, "missing.yaml")))
}

func TestConfigSetFlags(t *gotesting.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.SetFlags(fs)

	require.NoError(t, fs.Parse([]string{"-color=never", "-resultsdir=/tmp/r", "-verbose", "-logtime"}))
	require.Equal(t, reporting.ColorNever, cfg.Color)
	require.Equal(t, "/tmp/r", cfg.ResultsDir)
	require.True(t, cfg.Verbose)
	require.True(t, cfg.LogTime)
}

func TestConfigWithDefaults(t *gotesting.T) {
	reg := testing.NewRegistry(1)
	cfg := (&Config{Registry: reg}).withDefaults()
	require.Equal(t, reporting.ColorAlways, cfg.Color)
	require.NotNil(t, cfg.Stdout)
	require.NotNil(t, cfg.Stderr)
	require.NotNil(t, cfg.Clock)
	require.Same(t, reg, cfg.Registry)

	require.Same(t, testing.GlobalRegistry(), (&Config{}).withDefaults().Registry)
}
