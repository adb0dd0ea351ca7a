// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/dial"
	"github.com/bureau-foundation/clockface/lib/driver"
	"github.com/bureau-foundation/clockface/lib/svgface"
)

const svgUsage = `Write the clock face as an SVG document.

Without --once the driver runs until interrupted and a new document is
written on every tick. With --out the file is replaced atomically each
time, so a viewer polling it never sees a partial document; without it
the documents are written back to back on stdout.

Usage:
  clockface svg [flags]

Examples:
  # Keep /tmp/clock.svg current
  clockface svg --out /tmp/clock.svg

  # One snapshot of the current time
  clockface svg --once > now.svg
`

func runSVG(ctx context.Context, env environment, args []string) error {
	var (
		common  commonFlags
		outPath string
		once    bool
	)
	flagSet := pflag.NewFlagSet("svg", pflag.ContinueOnError)
	common.add(flagSet)
	flagSet.StringVarP(&outPath, "out", "o", "", "file to replace on every tick (default: stdout)")
	flagSet.BoolVar(&once, "once", false, "write a single document for the current time and exit")
	if done, err := parseFlags(env, flagSet, args, svgUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return cli.Validation("unexpected argument: %s", flagSet.Arg(0))
	}

	session, err := common.load(env, false)
	if err != nil {
		return err
	}
	defer session.closeLog()
	logger := session.logger.With("command", "svg")

	face, err := session.face()
	if err != nil {
		return err
	}
	destination := svgface.WriterDestination(env.stdout)
	if outPath != "" {
		destination = svgface.FileDestination(outPath)
	}

	if once {
		angles := dial.TargetsAt(env.clock.Now().In(session.location), session.settings.Easing)
		document, err := face.Render(angles, false)
		if err != nil {
			return cli.Internal("%w", err)
		}
		if err := destination.WriteDocument(document); err != nil {
			return cli.Validation("writing svg: %w", err)
		}
		return nil
	}

	sink := svgface.NewSink(face, destination, logger)
	clockDriver := driver.New(env.clock, session.driverOptions())
	clockDriver.Start(sink)
	logger.Info("writing svg face", "out", outPath, "interval", session.settings.Interval)

	<-ctx.Done()
	clockDriver.Stop()
	logger.Info("stopped", "documents", sink.Frames())
	return nil
}
