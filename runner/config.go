// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"flag"
	"io"
	"os"

	"code.cloudfoundry.org/clock"
	"gopkg.in/yaml.v2"

	"go.chromium.org/scruffy/errors"
	"go.chromium.org/scruffy/internal/reporting"
	"go.chromium.org/scruffy/testing"
)

// ColorMode selects when console output is colored.
type ColorMode = reporting.ColorMode

// Valid values of Config.Color.
const (
	ColorAlways = reporting.ColorAlways // always color (default)
	ColorNever  = reporting.ColorNever  // never color
	ColorAuto   = reporting.ColorAuto   // color terminals unless NO_COLOR is set
)

// Config contains the settings of a run. The zero value is not usable; call
// NewConfig.
type Config struct {
	// Color selects when console output is colored.
	Color ColorMode `yaml:"color"`
	// ResultsDir is the directory results.json, results.xml and timing.json
	// are written to. No file is written if it is empty.
	ResultsDir string `yaml:"resultsDir"`
	// Verbose enables debug messages of the harness itself.
	Verbose bool `yaml:"verbose"`
	// LogTime prefixes harness messages with a timestamp.
	LogTime bool `yaml:"logTime"`

	Stdout   io.Writer         `yaml:"-"`
	Stderr   io.Writer         `yaml:"-"`
	Clock    clock.Clock       `yaml:"-"`
	Registry *testing.Registry `yaml:"-"` // defaults to testing.GlobalRegistry()
}

// NewConfig returns a Config with default values, running the global
// registry on the process's standard streams.
func NewConfig() *Config {
	return &Config{
		Color:  reporting.ColorAlways,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Clock:  clock.NewClock(),
	}
}

// SetFlags adds flags for c to f.
func (c *Config) SetFlags(f *flag.FlagSet) {
	f.Var(&c.Color, "color", "colorize output: always, never or auto")
	f.StringVar(&c.ResultsDir, "resultsdir", c.ResultsDir, "directory for result files; none are written if empty")
	f.BoolVar(&c.Verbose, "verbose", c.Verbose, "log debug messages of the harness")
	f.BoolVar(&c.LogTime, "logtime", c.LogTime, "include timestamps in harness messages")
}

// LoadFile reads YAML settings from path into c. Keys missing from the file
// leave the corresponding fields unchanged; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	return c.validate()
}

func (c *Config) validate() error {
	if _, err := reporting.ParseColorMode(string(c.Color)); err != nil {
		return err
	}
	return nil
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.Color == "" {
		cfg.Color = reporting.ColorAlways
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewClock()
	}
	if cfg.Registry == nil {
		cfg.Registry = testing.GlobalRegistry()
	}
	return &cfg
}
