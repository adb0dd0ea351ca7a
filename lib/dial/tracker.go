// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dial

import (
	"math"
	"sync"
)

// FullTurn is one revolution in degrees.
const FullTurn = 360.0

// Tracker maps each hand to its cumulative angle. The zero value is
// ready to use with every hand at 0.
//
// A Tracker is safe for concurrent use. Drivers normally own one each;
// several drivers may share one to keep their faces in lockstep.
type Tracker struct {
	mu     sync.Mutex
	angles Angles
}

// NewTracker returns a tracker with every hand at 0 degrees.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Advance moves hand to target (degrees in [0, 360)) along the
// shorter arc and returns the new cumulative angle. The stored value
// modulo 360 equals target afterwards.
func (tracker *Tracker) Advance(hand Hand, target float64) float64 {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	current := tracker.angles[hand]
	next := current + ShortestDelta(current, target)
	tracker.angles[hand] = next
	return next
}

// Set stores target as hand's cumulative angle with no shortest-path
// adjustment and returns it.
func (tracker *Tracker) Set(hand Hand, target float64) float64 {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.angles[hand] = target
	return target
}

// Angle returns hand's current cumulative angle.
func (tracker *Tracker) Angle(hand Hand) float64 {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.angles[hand]
}

// Snapshot returns every hand's cumulative angle.
func (tracker *Tracker) Snapshot() Angles {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.angles
}

// Reset puts every hand back at 0.
func (tracker *Tracker) Reset() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.angles = Angles{}
}

// ShortestDelta returns the signed rotation in (-180, 180] that takes
// a hand at cumulative angle current to the dial position target.
// A half-turn resolves clockwise (+180).
func ShortestDelta(current, target float64) float64 {
	diff := target - Normalize(current)
	if diff > FullTurn/2 {
		diff -= FullTurn
	}
	if diff <= -FullTurn/2 {
		diff += FullTurn
	}
	return diff
}

// Normalize reduces a cumulative angle to its dial position in
// [0, 360). Negative angles wrap upward.
func Normalize(angle float64) float64 {
	position := math.Mod(angle, FullTurn)
	if position < 0 {
		position += FullTurn
	}
	// -1e-14 + 360 rounds to 360 in float64.
	if position >= FullTurn {
		position = 0
	}
	return position
}
