// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// clockface shows an analogue clock whose hands rotate the short way
// round. The driver recomputes the hand angles once a second and feeds
// them to one or more sinks:
//
//	tui     full-screen terminal clock (default)
//	svg     SVG document on stdout or in a file, rewritten every tick
//	print   one colored face of the current time, then exit
//	record  CBOR recording of every frame the driver emits
//	replay  play a recording back into the terminal, an SVG, or a list
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/clock"
	"github.com/bureau-foundation/clockface/lib/config"
	"github.com/bureau-foundation/clockface/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], systemEnvironment())
	stop()
	if err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// environment is everything a subcommand reads from the process.
// Tests substitute buffers and a fake clock.
type environment struct {
	stdout io.Writer
	stderr io.Writer
	clock  clock.Clock
	getenv func(string) string

	// terminalSize reports the size of the controlling terminal, or
	// ok=false when stdout is not one.
	terminalSize func() (width, height int, ok bool)
}

func systemEnvironment() environment {
	return environment{
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  clock.Real(),
		getenv: os.Getenv,
		terminalSize: func() (int, int, bool) {
			width, height, err := term.GetSize(int(os.Stdout.Fd()))
			return width, height, err == nil
		},
	}
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env environment, args []string) error
}

var commands = []command{
	{"tui", "full-screen terminal clock (default)", runTUI},
	{"svg", "write the face as SVG on every tick", runSVG},
	{"print", "print the current time as a colored face", runPrint},
	{"record", "record driver frames to a file", runRecord},
	{"replay", "play back a recording", runReplay},
}

func run(ctx context.Context, args []string, env environment) error {
	// Handle --version before subcommand dispatch to match the other
	// binaries.
	if len(args) > 0 && args[0] == "--version" {
		return version.Print(env.stdout, "clockface")
	}
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		printUsage(env.stderr)
		return nil
	}

	name := "tui"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	for _, candidate := range commands {
		if candidate.name == name {
			return candidate.run(ctx, env, args)
		}
	}
	return cli.Validation("unknown subcommand %q", name).
		WithHint("Run 'clockface --help' for the list of subcommands.")
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `clockface: analogue clock for the terminal and for SVG viewers.

Usage:
  clockface [subcommand] [flags]

Subcommands:
`)
	for _, candidate := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", candidate.name, candidate.summary)
	}
	fmt.Fprintf(w, `
Every subcommand accepts --config, --location, --easing, --verbose, and
--log-output. Without --config, the file named by %s is
used when set, and the built-in defaults otherwise.

Run 'clockface <subcommand> --help' for the flags of one subcommand.
`, config.EnvironmentVariable)
}
