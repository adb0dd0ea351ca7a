// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dial

import "fmt"

// Hand identifies one of the three clock hands.
type Hand uint8

const (
	Hour Hand = iota
	Minute
	Second
)

// Hands lists every hand in emission order.
var Hands = [...]Hand{Hour, Minute, Second}

// String returns the lowercase hand name used in logs, SVG element
// IDs, and recorded frames.
func (hand Hand) String() string {
	switch hand {
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	case Second:
		return "second"
	default:
		return fmt.Sprintf("hand(%d)", uint8(hand))
	}
}

// Valid reports whether hand is one of the three defined hands.
func (hand Hand) Valid() bool {
	return hand <= Second
}

// ParseHand is the inverse of [Hand.String].
func ParseHand(name string) (Hand, error) {
	for _, hand := range Hands {
		if hand.String() == name {
			return hand, nil
		}
	}
	return 0, fmt.Errorf("unknown hand %q", name)
}

// MarshalText encodes the hand by name, so recordings and config
// stay readable.
func (hand Hand) MarshalText() ([]byte, error) {
	if !hand.Valid() {
		return nil, fmt.Errorf("cannot encode invalid %s", hand)
	}
	return []byte(hand.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (hand *Hand) UnmarshalText(text []byte) error {
	parsed, err := ParseHand(string(text))
	if err != nil {
		return err
	}
	*hand = parsed
	return nil
}

// Angles is one value per hand, indexed by [Hand].
type Angles [len(Hands)]float64
