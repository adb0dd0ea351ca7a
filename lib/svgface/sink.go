// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package svgface

import (
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// Destination receives each completed document.
type Destination interface {
	WriteDocument(document []byte) error
}

// WriterDestination writes every document to w back to back. Useful
// for stdout and for tests.
func WriterDestination(w io.Writer) Destination {
	return writerDestination{w}
}

type writerDestination struct {
	writer io.Writer
}

func (destination writerDestination) WriteDocument(document []byte) error {
	_, err := destination.writer.Write(document)
	return err
}

// FileDestination replaces the file at path with each document. The
// replacement is atomic, so a viewer polling the file never reads a
// partial document.
func FileDestination(path string) Destination {
	return fileDestination(path)
}

type fileDestination string

func (destination fileDestination) WriteDocument(document []byte) error {
	return WriteFileAtomic(string(destination), document)
}

// Sink implements driver.Sink. It buffers hand angles and writes a
// document when the second hand, the last hand of every driver frame,
// is emitted, and again whenever the animation mode changes.
//
// Write failures are logged and the frame is dropped; the driver is
// fire-and-forget and has no way to act on them.
type Sink struct {
	face        *Face
	destination Destination
	logger      *slog.Logger

	mu       sync.Mutex
	angles   dial.Angles
	animated bool
	frames   uint64
}

// NewSink returns a sink writing face documents to destination. A nil
// logger discards write failures.
func NewSink(face *Face, destination Destination, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sink{face: face, destination: destination, logger: logger}
}

// Emit records hand's angle and flushes on the second hand.
func (sink *Sink) Emit(hand dial.Hand, angle float64) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	sink.angles[hand] = angle
	if hand == dial.Second {
		sink.flushLocked()
	}
}

// EnableAnimation switches the document to transitioned rotations.
func (sink *Sink) EnableAnimation() {
	sink.setAnimated(true)
}

// DisableAnimation switches the document to instantaneous rotations.
func (sink *Sink) DisableAnimation() {
	sink.setAnimated(false)
}

func (sink *Sink) setAnimated(animated bool) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.animated == animated {
		return
	}
	sink.animated = animated
	if sink.frames > 0 {
		sink.flushLocked()
	}
}

// Frames returns the number of documents written successfully.
func (sink *Sink) Frames() uint64 {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.frames
}

func (sink *Sink) flushLocked() {
	document, err := sink.face.Render(sink.angles, sink.animated)
	if err != nil {
		sink.logger.Error("rendering svg frame failed", "error", err)
		return
	}
	if err := sink.destination.WriteDocument(document); err != nil {
		sink.logger.Warn("writing svg frame failed", "error", err)
		return
	}
	sink.frames++
}
