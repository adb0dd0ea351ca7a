// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/faceui"
	"github.com/bureau-foundation/clockface/lib/record"
	"github.com/bureau-foundation/clockface/lib/svgface"
)

const replayUsage = `Play back a recording made by 'clockface record' or 'clockface --record'.

By default the recording plays in the terminal face with its original
spacing. --list prints the frames instead, and --svg renders them into
an SVG file.

Usage:
  clockface replay FILE [flags]

Examples:
  # Watch a recording at four times the speed
  clockface replay session.clkf --speed 4

  # Inspect the frames
  clockface replay session.clkf --list

  # Render the final face of a recording
  clockface replay session.clkf --svg last.svg --speed 0
`

func runReplay(ctx context.Context, env environment, args []string) error {
	var (
		common  commonFlags
		speed   float64
		list    bool
		svgPath string
	)
	flagSet := pflag.NewFlagSet("replay", pflag.ContinueOnError)
	common.add(flagSet)
	flagSet.Float64Var(&speed, "speed", 1, "playback speed; 0 plays every frame immediately")
	flagSet.BoolVar(&list, "list", false, "print the frames instead of playing them")
	flagSet.StringVar(&svgPath, "svg", "", "render the frames into this SVG file")
	if done, err := parseFlags(env, flagSet, args, replayUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return cli.Validation("replay takes exactly one recording, got %d arguments", flagSet.NArg()).
			WithHint("Run 'clockface replay --help' for usage.")
	}
	if list && svgPath != "" {
		return cli.Validation("--list and --svg are mutually exclusive")
	}
	path := flagSet.Arg(0)

	reader, err := record.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cli.NotFound("recording %s does not exist", path).
			WithHint("Record one with 'clockface record --out " + path + "'.")
	}
	if errors.Is(err, record.ErrNotRecording) {
		return cli.Validation("%w", err)
	}
	if err != nil {
		return cli.Internal("%w", err)
	}
	defer reader.Close()

	if list {
		return listFrames(env, reader)
	}

	session, err := common.load(env, svgPath == "")
	if err != nil {
		return err
	}
	defer session.closeLog()
	logger := session.logger.With("command", "replay", "path", path)
	options := record.ReplayOptions{Speed: speed}

	if svgPath != "" {
		face, err := session.face()
		if err != nil {
			return err
		}
		sink := svgface.NewSink(face, svgface.FileDestination(svgPath), logger)
		delivered, err := record.Replay(ctx, env.clock, reader, sink, options)
		logger.Info("replayed", "frames", delivered, "documents", sink.Frames())
		if err != nil && ctx.Err() == nil {
			return cli.Internal("replaying %s: %w", path, err)
		}
		return nil
	}

	// The readout shows the wall clock, not the recorded time.
	model := faceui.NewModel(env.clock, nil, faceui.Options{
		HideReadout: true,
		Durations:   &session.transitions,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	replayCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		delivered, err := record.Replay(replayCtx, env.clock, reader, faceui.NewProgramSink(program), options)
		if err != nil && replayCtx.Err() == nil {
			logger.Error("replay failed", "frames", delivered, "error", err)
			return
		}
		logger.Info("replay finished", "frames", delivered)
	}()

	_, runErr := program.Run()
	cancel()
	<-done
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return runErr
}

// listFrames prints one line per frame. A truncated recording prints
// every complete frame before the error.
func listFrames(env environment, reader *record.Reader) error {
	fmt.Fprintf(env.stdout, "compression: %s\n", reader.Compression())
	count := 0
	for {
		frame, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(env.stderr, "recording ends after %d frames: %v\n", count, err)
			return &cli.ExitError{Code: 1}
		}
		fmt.Fprintln(env.stdout, frame)
		count++
	}
}
