// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/dial"
	"github.com/bureau-foundation/clockface/lib/faceui"
	"github.com/bureau-foundation/clockface/lib/tui"
)

const printCommandUsage = `Print the current time as a single clock face and exit.

Usage:
  clockface print [flags]

Examples:
  # Face sized to the terminal
  clockface print

  # Small uncolored face for a log file
  clockface print --radius 5 --color never
`

// defaultPrintRadius is used when stdout is not a terminal.
const defaultPrintRadius = 8

func runPrint(ctx context.Context, env environment, args []string) error {
	var (
		common      commonFlags
		radius      int
		hideSeconds bool
		colorMode   string
	)
	flagSet := pflag.NewFlagSet("print", pflag.ContinueOnError)
	common.add(flagSet)
	flagSet.IntVar(&radius, "radius", 0, "face radius in rows (default: fit the terminal)")
	flagSet.BoolVar(&hideSeconds, "hide-seconds", false, "omit the second hand")
	flagSet.StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")
	if done, err := parseFlags(env, flagSet, args, printCommandUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return cli.Validation("unexpected argument: %s", flagSet.Arg(0))
	}

	var profile termenv.Profile
	switch colorMode {
	case "auto":
		profile = termenv.NewOutput(env.stdout).EnvColorProfile()
	case "always":
		profile = termenv.ANSI256
	case "never":
		profile = termenv.Ascii
	default:
		return cli.Validation("--color must be auto, always, or never, got %q", colorMode)
	}
	if radius < 0 {
		return cli.Validation("--radius must not be negative, got %d", radius)
	}
	if radius == 0 {
		radius = fitRadius(env)
	}

	session, err := common.load(env, false)
	if err != nil {
		return err
	}
	defer session.closeLog()

	now := env.clock.Now().In(session.location)
	caption := now.Format("15:04:05 MST")
	if hideSeconds {
		caption = now.Format("15:04 MST")
	}
	return faceui.Print(env.stdout, dial.TargetsAt(now, session.settings.Easing), faceui.PrintOptions{
		Radius:      radius,
		ShowSeconds: !hideSeconds,
		Theme:       tui.DefaultTheme,
		Profile:     profile,
		Caption:     caption,
	})
}

// fitRadius is the largest radius whose face and caption fit the
// terminal, leaving a row for the next prompt.
func fitRadius(env environment) int {
	if env.terminalSize == nil {
		return defaultPrintRadius
	}
	width, height, ok := env.terminalSize()
	if !ok {
		return defaultPrintRadius
	}
	return max(faceui.MinimumRadius, min((height-3)/2, (width-1)/4))
}
