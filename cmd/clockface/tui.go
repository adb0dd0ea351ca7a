// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/driver"
	"github.com/bureau-foundation/clockface/lib/faceui"
	"github.com/bureau-foundation/clockface/lib/record"
	"github.com/bureau-foundation/clockface/lib/svgface"
)

const tuiUsage = `Full-screen analogue clock.

The hands move the short way round on every tick. Press r to resync
the face to the wall clock, s to toggle the second hand, q to quit.

Usage:
  clockface [tui] [flags]

Examples:
  # Clock in the local zone
  clockface

  # Tokyo time with an eased second hand
  clockface --location Asia/Tokyo --easing cosine

  # Mirror the face into an SVG that a browser can poll
  clockface --svg /tmp/clock.svg
`

func runTUI(ctx context.Context, env environment, args []string) error {
	var (
		common      commonFlags
		hideSeconds bool
		svgPath     string
		recordPath  string
	)
	flagSet := pflag.NewFlagSet("tui", pflag.ContinueOnError)
	common.add(flagSet)
	flagSet.BoolVar(&hideSeconds, "hide-seconds", false, "start with the second hand hidden")
	flagSet.StringVar(&svgPath, "svg", "", "also write the face to this SVG file on every tick")
	flagSet.StringVar(&recordPath, "record", "", "also record every frame to this file")
	if done, err := parseFlags(env, flagSet, args, tuiUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return cli.Validation("unexpected argument: %s", flagSet.Arg(0))
	}

	session, err := common.load(env, true)
	if err != nil {
		return err
	}
	defer session.closeLog()
	logger := session.logger.With("command", "tui")

	clockDriver := driver.New(env.clock, session.driverOptions())
	model := faceui.NewModel(env.clock, clockDriver, faceui.Options{
		Location:    session.location,
		HideSeconds: hideSeconds,
		Durations:   &session.transitions,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	sinks := []driver.Sink{faceui.NewProgramSink(program)}
	if svgPath != "" {
		face, err := session.face()
		if err != nil {
			return err
		}
		sinks = append(sinks, svgface.NewSink(face, svgface.FileDestination(svgPath), logger))
	}
	if recordPath != "" {
		compression, err := record.ParseCompressionTag(session.config.Record.Compression)
		if err != nil {
			return cli.Internal("%w", err)
		}
		writer, err := record.Create(recordPath, compression, env.clock, logger)
		if err != nil {
			return cli.Validation("creating recording: %w", err)
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("closing recording failed", "path", recordPath, "error", err)
			}
		}()
		sinks = append(sinks, writer)
	}

	// Start delivers the first frame through program.Send, which blocks
	// until the program's event loop is running, so it cannot run on
	// this goroutine. Once Run returns the program context is done and
	// Send returns immediately, so waiting for Start cannot hang.
	started := make(chan struct{})
	go func() {
		defer close(started)
		clockDriver.Start(driver.Tee(sinks...))
	}()

	_, runErr := program.Run()
	<-started
	clockDriver.Stop()
	logger.Debug("clock stopped", "ticks", clockDriver.Ticks())

	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return runErr
}
