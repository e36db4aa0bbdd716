// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"go.chromium.org/scruffy/testing"
)

// listCmd implements subcommands.Command to support listing tests.
type listCmd struct {
	json bool    // marshal tests to JSON instead of just printing names
	cfg  *Config // provides the registry and output stream
}

var _ = subcommands.Command(&listCmd{})

func newListCmd(cfg *Config) *listCmd {
	return &listCmd{cfg: cfg}
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list registered tests" }
func (*listCmd) Usage() string {
	return `Usage: list [flag]...

Description:
    Lists registered tests in the order they would run, one "suite.name"
    per line.

Flag:
`
}

func (lc *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&lc.json, "json", false, "print tests as JSON")
}

func (lc *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := lc.cfg.withDefaults()
	if f.NArg() > 0 {
		fmt.Fprintf(cfg.Stderr, "Unexpected arguments %q\n\n%s", f.Args(), lc.Usage())
		return subcommands.ExitUsageError
	}
	if err := printTests(cfg.Stdout, cfg.Registry.AllTests(), lc.json); err != nil {
		fmt.Fprintln(cfg.Stderr, "scruffy: failed to write tests:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// listedTest is the JSON representation of a registered test.
type listedTest struct {
	Suite string `json:"suite"`
	Name  string `json:"name"`
}

// printTests writes tests to w.
func printTests(w io.Writer, tests []testing.TestInstance, asJSON bool) error {
	if asJSON {
		lts := make([]listedTest, len(tests))
		for i, t := range tests {
			lts[i] = listedTest{Suite: t.Suite(), Name: t.Name()}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lts)
	}

	// If -json wasn't passed, just print test names, one per line.
	for _, t := range tests {
		if _, err := fmt.Fprintln(w, t.FullName()); err != nil {
			return err
		}
	}
	return nil
}
