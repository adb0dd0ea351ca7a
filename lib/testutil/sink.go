// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strconv"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// ChannelSink is a clock sink that reports every call on Calls:
// "hour=304.5" for an emit, "enable" and "disable" for the animation
// switches. A call blocks once the buffer is full, so size it for the
// frames the test does not drain.
type ChannelSink struct {
	Calls chan string
}

// NewChannelSink returns a sink buffering up to capacity calls.
func NewChannelSink(capacity int) *ChannelSink {
	return &ChannelSink{Calls: make(chan string, capacity)}
}

func (sink *ChannelSink) Emit(hand dial.Hand, angle float64) {
	sink.Calls <- EmitCall(hand, angle)
}

func (sink *ChannelSink) EnableAnimation() { sink.Calls <- "enable" }

func (sink *ChannelSink) DisableAnimation() { sink.Calls <- "disable" }

// EmitCall is the string ChannelSink reports for an emit.
func EmitCall(hand dial.Hand, angle float64) string {
	return hand.String() + "=" + strconv.FormatFloat(angle, 'g', -1, 64)
}
