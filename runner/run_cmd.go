// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// runCmd implements subcommands.Command to support running tests.
type runCmd struct {
	cfg        *Config // settings of the run, updated by flags
	configPath string  // YAML file loaded before flags are applied
}

var _ = subcommands.Command(&runCmd{})

func newRunCmd(cfg *Config) *runCmd {
	return &runCmd{cfg: cfg}
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run all registered tests" }
func (*runCmd) Usage() string {
	return `Usage: run [flag]...

Description:
    Runs every registered test in registration order and prints a summary.
    Exits with 0 if all assertions passed and 1 otherwise. A failed fatal
    assertion stops the run; the remaining tests are reported as not run.

    Settings may be read from a YAML file given by -config, e.g.

        color: never
        resultsDir: /tmp/results

    Flags given on the command line take precedence over the file.

Flag:
`
}

func (rc *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&rc.configPath, "config", "", "YAML file with run settings")
	rc.cfg.SetFlags(f)
}

func (rc *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(rc.cfg.Stderr, "Unexpected arguments %q\n\n%s", f.Args(), rc.Usage())
		return subcommands.ExitUsageError
	}
	if err := applyConfigFile(f, rc.cfg, rc.configPath); err != nil {
		fmt.Fprintln(rc.cfg.Stderr, "scruffy:", err)
		return subcommands.ExitUsageError
	}

	res, err := Run(ctx, rc.cfg)
	if err != nil {
		fmt.Fprintln(rc.cfg.Stderr, "scruffy:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitStatus(res.ExitCode())
}

// applyConfigFile loads path into cfg and then re-applies the flags that were
// explicitly set in f, so that they override the file.
func applyConfigFile(f *flag.FlagSet, cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	set := make(map[string]string)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = fl.Value.String() })

	if err := cfg.LoadFile(path); err != nil {
		return err
	}
	for name, val := range set {
		if err := f.Set(name, val); err != nil {
			return err
		}
	}
	return nil
}
