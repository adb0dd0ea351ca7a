// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/clockface/lib/codec"
)

// ErrNotRecording is returned when a file does not start with the
// recording header.
var ErrNotRecording = errors.New("not a clockface recording")

// Reader decodes frames from a recording.
type Reader struct {
	compression CompressionTag
	decoder     *codec.Decoder
	release     func()
	file        io.Closer
}

// NewReader reads the header from r and prepares to decode frames.
func NewReader(r io.Reader) (*Reader, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: file shorter than header", ErrNotRecording)
		}
		return nil, fmt.Errorf("reading recording header: %w", err)
	}
	if !bytes.Equal(header[:len(headerMagic)], []byte(headerMagic)) {
		return nil, ErrNotRecording
	}
	if version := header[len(headerMagic)]; version != headerVersion {
		return nil, fmt.Errorf("unsupported recording version %d (want %d)", version, headerVersion)
	}
	compression := CompressionTag(header[len(headerMagic)+1])
	body, release, err := decompressor(r, compression)
	if err != nil {
		return nil, err
	}
	return &Reader{
		compression: compression,
		decoder:     codec.NewDecoder(body),
		release:     release,
	}, nil
}

// Open opens a recording file.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	reader, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	reader.file = file
	return reader, nil
}

// Compression returns the tag from the header.
func (reader *Reader) Compression() CompressionTag {
	return reader.compression
}

// Next returns the next frame, or io.EOF after the last one. A
// recording cut off mid-frame returns io.ErrUnexpectedEOF.
func (reader *Reader) Next() (Frame, error) {
	var frame Frame
	if err := reader.decoder.Decode(&frame); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("decoding frame: %w", err)
	}
	return frame, nil
}

// All reads every remaining frame.
func (reader *Reader) All() ([]Frame, error) {
	var frames []Frame
	for {
		frame, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}

// Close releases decoder resources and closes the file if Open opened
// it.
func (reader *Reader) Close() error {
	reader.release()
	if reader.file != nil {
		return reader.file.Close()
	}
	return nil
}
