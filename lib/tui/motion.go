// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"
	"time"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// FrameInterval is the re-render period while any hand is moving.
// ~30fps is smooth enough for a character-cell face.
const FrameInterval = 33 * time.Millisecond

// Curve maps linear progress in [0, 1] to eased progress. Eased
// progress may leave [0, 1] in between (overshoot) but is 0 at 0 and
// 1 at 1.
type Curve func(progress float64) float64

// Linear is the identity curve.
func Linear(progress float64) float64 { return progress }

// StationCurve overshoots slightly and settles back, like the second
// hand of a station clock. Same control points as the SVG face.
var StationCurve = CubicBezier(0.2, 0.8, 0.2, 1.2)

// CubicBezier returns the easing curve of CSS cubic-bezier(x1, y1,
// x2, y2): the curve through (0,0), (x1,y1), (x2,y2), (1,1), sampled
// at the parameter whose x equals progress.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(progress float64) float64 {
		if progress <= 0 {
			return 0
		}
		if progress >= 1 {
			return 1
		}

		parameter := progress
		for range 8 {
			offset := bezierSample(x1, x2, parameter) - progress
			if math.Abs(offset) < 1e-7 {
				return bezierSample(y1, y2, clampUnit(parameter))
			}
			slope := bezierSlope(x1, x2, parameter)
			if math.Abs(slope) < 1e-7 {
				break
			}
			parameter -= offset / slope
		}

		// Newton stalled on a flat spot: bisect instead.
		low, high := 0.0, 1.0
		parameter = clampUnit(parameter)
		for range 20 {
			offset := bezierSample(x1, x2, parameter) - progress
			if math.Abs(offset) < 1e-7 {
				break
			}
			if offset > 0 {
				high = parameter
			} else {
				low = parameter
			}
			parameter = (low + high) / 2
		}
		return bezierSample(y1, y2, parameter)
	}
}

func bezierSample(a, b, parameter float64) float64 {
	inverse := 1 - parameter
	return 3*inverse*inverse*parameter*a + 3*inverse*parameter*parameter*b + parameter*parameter*parameter
}

func bezierSlope(a, b, parameter float64) float64 {
	inverse := 1 - parameter
	return 3*inverse*inverse*a + 6*inverse*parameter*(b-a) + 3*parameter*parameter*(1-b)
}

func clampUnit(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}

// DefaultDurations are the transition lengths per hand: half a second
// for hour and minute, 300ms for the second hand.
var DefaultDurations = [len(dial.Hands)]time.Duration{
	dial.Hour:   500 * time.Millisecond,
	dial.Minute: 500 * time.Millisecond,
	dial.Second: 300 * time.Millisecond,
}

// handMotion is one hand's current transition.
type handMotion struct {
	from  float64
	to    float64
	start time.Time
}

// Motion interpolates displayed hand angles toward the cumulative
// angles emitted by the driver. With animation off every retarget is
// an instant jump. Not safe for concurrent use; the bubbletea model
// owns it.
type Motion struct {
	curve     Curve
	durations [len(dial.Hands)]time.Duration
	animated  bool
	hands     [len(dial.Hands)]handMotion
}

// NewMotion returns a Motion with every hand at rest at 0 and
// animation off. A nil curve means Linear.
func NewMotion(curve Curve, durations [len(dial.Hands)]time.Duration) *Motion {
	if curve == nil {
		curve = Linear
	}
	return &Motion{curve: curve, durations: durations}
}

// SetAnimated switches between eased and instantaneous retargets.
// Turning animation off also finishes any transition in flight.
func (motion *Motion) SetAnimated(animated bool) {
	motion.animated = animated
	if !animated {
		for index := range motion.hands {
			motion.hands[index].from = motion.hands[index].to
		}
	}
}

// Animated reports the current mode.
func (motion *Motion) Animated() bool { return motion.animated }

// Retarget starts a transition of hand from wherever it is displayed
// at now toward angle.
func (motion *Motion) Retarget(hand dial.Hand, angle float64, now time.Time) {
	if !hand.Valid() {
		return
	}
	from := angle
	if motion.animated {
		from = motion.Angle(hand, now)
	}
	motion.hands[hand] = handMotion{from: from, to: angle, start: now}
}

// Angle returns hand's displayed angle at now.
func (motion *Motion) Angle(hand dial.Hand, now time.Time) float64 {
	if !hand.Valid() {
		return 0
	}
	state := motion.hands[hand]
	duration := motion.durations[hand]
	elapsed := now.Sub(state.start)
	if state.from == state.to || duration <= 0 || elapsed >= duration {
		return state.to
	}
	if elapsed <= 0 {
		return state.from
	}
	progress := motion.curve(float64(elapsed) / float64(duration))
	return state.from + (state.to-state.from)*progress
}

// Angles returns every hand's displayed angle at now.
func (motion *Motion) Angles(now time.Time) dial.Angles {
	var angles dial.Angles
	for _, hand := range dial.Hands {
		angles[hand] = motion.Angle(hand, now)
	}
	return angles
}

// Target returns the angle hand is heading to.
func (motion *Motion) Target(hand dial.Hand) float64 {
	if !hand.Valid() {
		return 0
	}
	return motion.hands[hand].to
}

// Moving reports whether any hand is still in transition at now, in
// which case the view needs another frame.
func (motion *Motion) Moving(now time.Time) bool {
	for _, hand := range dial.Hands {
		state := motion.hands[hand]
		if state.from != state.to && now.Sub(state.start) < motion.durations[hand] {
			return true
		}
	}
	return false
}
