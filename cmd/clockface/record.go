// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/driver"
	"github.com/bureau-foundation/clockface/lib/record"
)

const recordUsage = `Record every frame the clock driver emits.

The recording holds the animation switches and hand rotations with the
time each was emitted, and plays back with 'clockface replay'.

Usage:
  clockface record [flags]

Examples:
  # Record to record.path from the config until interrupted
  clockface record

  # One minute, uncompressed, to a chosen file
  clockface record --out minute.clkf --duration 1m --compression none
`

func runRecord(ctx context.Context, env environment, args []string) error {
	var (
		common      commonFlags
		outPath     string
		compression string
		duration    time.Duration
	)
	flagSet := pflag.NewFlagSet("record", pflag.ContinueOnError)
	common.add(flagSet)
	flagSet.StringVarP(&outPath, "out", "o", "", "recording path (default: record.path)")
	flagSet.StringVar(&compression, "compression", "", "none, lz4, or zstd (default: record.compression)")
	flagSet.DurationVar(&duration, "duration", 0, "stop after this long (default: until interrupted)")
	if done, err := parseFlags(env, flagSet, args, recordUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return cli.Validation("unexpected argument: %s", flagSet.Arg(0))
	}
	if duration < 0 {
		return cli.Validation("--duration must not be negative, got %s", duration)
	}

	session, err := common.load(env, false)
	if err != nil {
		return err
	}
	defer session.closeLog()

	if outPath != "" {
		session.config.Record.Path = outPath
	}
	if compression == "" {
		compression = session.config.Record.Compression
	}
	tag, err := record.ParseCompressionTag(compression)
	if err != nil {
		return cli.Validation("--compression: %w", err)
	}
	if err := session.config.EnsureRecordDirectory(); err != nil {
		return cli.Validation("%w", err)
	}

	path := session.config.Record.Path
	logger := session.logger.With("command", "record", "path", path)
	writer, err := record.Create(path, tag, env.clock, logger)
	if err != nil {
		return cli.Validation("creating recording: %w", err)
	}

	clockDriver := driver.New(env.clock, session.driverOptions())
	clockDriver.Start(writer)
	logger.Info("recording", "compression", tag, "duration", duration)

	var deadline <-chan time.Time
	if duration > 0 {
		deadline = env.clock.After(duration)
	}
	select {
	case <-deadline:
	case <-ctx.Done():
	}
	clockDriver.Stop()

	if err := writer.Close(); err != nil {
		return cli.Internal("recording %s: %w", path, err)
	}
	logger.Info("recording saved", "frames", writer.Frames())
	return nil
}
