// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
)

// Main runs the harness as the program's entry point and exits the process.
// A test binary only needs to register its tests and call Main:
//
//	func main() {
//		runner.Main()
//	}
//
// Without a subcommand, or with only flags, the "run" subcommand runs all
// registered tests. The exit status is 0 if every assertion passed, 1 if any
// failed and 2 for command line errors.
func Main() {
	os.Exit(doMain(context.Background(), filepath.Base(os.Args[0]), os.Args[1:], NewConfig()))
}

// doMain implements Main. It's a separate function so that its deferred
// functions run before os.Exit makes the program exit immediately.
func doMain(ctx context.Context, name string, args []string, cfg *Config) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cfg.Stderr)

	cdr := subcommands.NewCommander(fs, name)
	cdr.Output = cfg.Stdout
	cdr.Error = cfg.Stderr
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")
	cdr.Register(newRunCmd(cfg), "")
	cdr.Register(newListCmd(cfg), "")

	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		args = append([]string{"run"}, args...)
	}
	if err := fs.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}
	return int(cdr.Execute(ctx))
}
