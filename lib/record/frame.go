// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"fmt"
	"time"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// Kind says which sink call a frame captures.
type Kind uint8

const (
	KindEmit Kind = iota
	KindEnableAnimation
	KindDisableAnimation
)

func (kind Kind) String() string {
	switch kind {
	case KindEmit:
		return "emit"
	case KindEnableAnimation:
		return "enable_animation"
	case KindDisableAnimation:
		return "disable_animation"
	default:
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
}

// MarshalText encodes the kind by name.
func (kind Kind) MarshalText() ([]byte, error) {
	if kind > KindDisableAnimation {
		return nil, fmt.Errorf("cannot encode invalid %s", kind)
	}
	return []byte(kind.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (kind *Kind) UnmarshalText(text []byte) error {
	for candidate := KindEmit; candidate <= KindDisableAnimation; candidate++ {
		if candidate.String() == string(text) {
			*kind = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown frame kind %q", text)
}

// Frame is one recorded sink call. Hand and Angle are meaningful only
// for KindEmit.
type Frame struct {
	Sequence uint64    `cbor:"seq"`
	Time     time.Time `cbor:"time"`
	Kind     Kind      `cbor:"kind"`
	Hand     dial.Hand `cbor:"hand"`
	Angle    float64   `cbor:"angle,omitempty"`
}

func (frame Frame) String() string {
	if frame.Kind == KindEmit {
		return fmt.Sprintf("#%d %s %s %s=%g", frame.Sequence,
			frame.Time.Format(time.RFC3339Nano), frame.Kind, frame.Hand, frame.Angle)
	}
	return fmt.Sprintf("#%d %s %s", frame.Sequence, frame.Time.Format(time.RFC3339Nano), frame.Kind)
}

// File header layout.
const (
	headerMagic   = "CLKF"
	headerVersion = 1
	headerSize    = len(headerMagic) + 2
)
