// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faceui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// HandMsg carries one driver emit into the model.
type HandMsg struct {
	Hand  dial.Hand
	Angle float64
}

// AnimationMsg carries an animation mode change into the model.
type AnimationMsg struct {
	Enabled bool
}

// Sender is the subset of *tea.Program the sink needs.
type Sender interface {
	Send(message tea.Msg)
}

// ProgramSink forwards driver calls to a running bubbletea program.
// It implements driver.Sink and driver.AnimationDisabler.
//
// Send blocks until the program's event loop accepts the message (or
// the program has exited), and the driver holds its lock while
// emitting. The model must therefore never call back into the driver
// from Update; see Model's resync handling.
type ProgramSink struct {
	sender Sender
}

// NewProgramSink returns a sink that delivers to sender.
func NewProgramSink(sender Sender) *ProgramSink {
	return &ProgramSink{sender: sender}
}

func (sink *ProgramSink) Emit(hand dial.Hand, angle float64) {
	sink.sender.Send(HandMsg{Hand: hand, Angle: angle})
}

func (sink *ProgramSink) EnableAnimation() {
	sink.sender.Send(AnimationMsg{Enabled: true})
}

func (sink *ProgramSink) DisableAnimation() {
	sink.sender.Send(AnimationMsg{Enabled: false})
}
