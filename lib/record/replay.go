// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bureau-foundation/clockface/lib/clock"
	"github.com/bureau-foundation/clockface/lib/driver"
)

// FrameSource yields frames until io.EOF. *Reader implements it.
type FrameSource interface {
	Next() (Frame, error)
}

// ReplayOptions configures Replay.
type ReplayOptions struct {
	// Speed scales playback: 2 plays twice as fast. Zero or negative
	// plays every frame back to back with no waiting.
	Speed float64
}

// Replay feeds frames from source into sink, waiting between frames
// as long as the recording did (scaled by Speed) on clk. It returns
// the number of frames delivered, and ctx.Err() if ctx ends first.
func Replay(ctx context.Context, clk clock.Clock, source FrameSource, sink driver.Sink, options ReplayOptions) (int, error) {
	var (
		previous  time.Time
		delivered int
	)
	for {
		frame, err := source.Next()
		if errors.Is(err, io.EOF) {
			return delivered, nil
		}
		if err != nil {
			return delivered, err
		}

		if delivered > 0 && options.Speed > 0 {
			gap := time.Duration(float64(frame.Time.Sub(previous)) / options.Speed)
			if gap > 0 {
				select {
				case <-clk.After(gap):
				case <-ctx.Done():
					return delivered, ctx.Err()
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		deliver(sink, frame)
		previous = frame.Time
		delivered++
	}
}

func deliver(sink driver.Sink, frame Frame) {
	switch frame.Kind {
	case KindEmit:
		sink.Emit(frame.Hand, frame.Angle)
	case KindEnableAnimation:
		sink.EnableAnimation()
	case KindDisableAnimation:
		if disabler, ok := sink.(driver.AnimationDisabler); ok {
			disabler.DisableAnimation()
		}
	}
}
