// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/bureau-foundation/clockface/lib/clock"
	"github.com/bureau-foundation/clockface/lib/codec"
	"github.com/bureau-foundation/clockface/lib/dial"
)

// Writer records sink calls as frames. Safe for concurrent use.
//
// Sink methods cannot return errors, so the first write failure is
// kept, logged once, and returned from Err and Close. Frames after a
// failure or after Close are dropped.
type Writer struct {
	clock  clock.Clock
	logger *slog.Logger

	mu         sync.Mutex
	compressor io.WriteCloser
	file       io.Closer
	encoder    *codec.Encoder
	sequence   uint64
	err        error
	closed     bool
}

// NewWriter writes the header to w and returns a Writer that stamps
// frames with source's time. Close flushes the compressor but leaves w
// open.
func NewWriter(w io.Writer, compression CompressionTag, source clock.Clock, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	header := append([]byte(headerMagic), headerVersion, byte(compression))
	if _, err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing recording header: %w", err)
	}
	stream, err := compressor(w, compression)
	if err != nil {
		return nil, err
	}
	return &Writer{
		clock:      source,
		logger:     logger,
		compressor: stream,
		encoder:    codec.NewEncoder(stream),
	}, nil
}

// Create truncates or creates path and records into it. Close also
// closes the file.
func Create(path string, compression CompressionTag, source clock.Clock, logger *slog.Logger) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	writer, err := NewWriter(file, compression, source, logger)
	if err != nil {
		file.Close()
		return nil, err
	}
	writer.file = file
	writer.logger = writer.logger.With("path", path)
	return writer, nil
}

func (writer *Writer) Emit(hand dial.Hand, angle float64) {
	writer.write(KindEmit, hand, angle)
}

func (writer *Writer) EnableAnimation() {
	writer.write(KindEnableAnimation, 0, 0)
}

func (writer *Writer) DisableAnimation() {
	writer.write(KindDisableAnimation, 0, 0)
}

func (writer *Writer) write(kind Kind, hand dial.Hand, angle float64) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.err != nil || writer.closed {
		return
	}
	frame := Frame{
		Sequence: writer.sequence,
		Time:     writer.clock.Now(),
		Kind:     kind,
		Hand:     hand,
		Angle:    angle,
	}
	if err := writer.encoder.Encode(frame); err != nil {
		writer.err = fmt.Errorf("writing frame %d: %w", frame.Sequence, err)
		writer.logger.Warn("recording stopped", "error", writer.err)
		return
	}
	writer.sequence++
}

// Frames returns how many frames have been written.
func (writer *Writer) Frames() uint64 {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	return writer.sequence
}

// Err returns the first write failure, if any.
func (writer *Writer) Err() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	return writer.err
}

// Close flushes the compressor and closes the file if Create opened
// it. It returns the first write failure if there was one. Close is
// idempotent.
func (writer *Writer) Close() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.closed {
		return writer.err
	}
	writer.closed = true

	errs := []error{writer.err}
	if err := writer.compressor.Close(); err != nil {
		errs = append(errs, fmt.Errorf("flushing recording: %w", err))
	}
	if writer.file != nil {
		if err := writer.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing recording: %w", err))
		}
	}
	writer.err = errors.Join(errs...)
	writer.logger.Debug("recording closed", "frames", writer.sequence)
	return writer.err
}
