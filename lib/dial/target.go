// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dial

import (
	"fmt"
	"math"
	"time"
)

// Degrees per unit of each hand's motion.
const (
	DegreesPerHour         = 30.0 // FullTurn / 12
	DegreesPerMinuteOfHour = 0.5  // DegreesPerHour / 60
	DegreesPerMinute       = 6.0  // FullTurn / 60
	DegreesPerSecond       = 6.0  // FullTurn / 60
)

// Easing selects how the second hand's target is derived within a
// second.
type Easing uint8

const (
	// EasingStep moves the second hand in whole-second steps.
	EasingStep Easing = iota

	// EasingCosine interpolates the second hand toward the next
	// whole-second position with a cosine ease-in-out over the
	// elapsed milliseconds. Only useful with a sub-second tick.
	EasingCosine
)

func (easing Easing) String() string {
	switch easing {
	case EasingStep:
		return "step"
	case EasingCosine:
		return "cosine"
	default:
		return fmt.Sprintf("easing(%d)", uint8(easing))
	}
}

// ParseEasing accepts "step" (or "") and "cosine".
func ParseEasing(name string) (Easing, error) {
	switch name {
	case "", "step":
		return EasingStep, nil
	case "cosine":
		return EasingCosine, nil
	default:
		return 0, fmt.Errorf("unknown second hand easing %q (want step or cosine)", name)
	}
}

// MarshalText encodes the easing by name.
func (easing Easing) MarshalText() ([]byte, error) {
	if easing > EasingCosine {
		return nil, fmt.Errorf("cannot encode invalid %s", easing)
	}
	return []byte(easing.String()), nil
}

// UnmarshalText accepts the names ParseEasing accepts.
func (easing *Easing) UnmarshalText(text []byte) error {
	parsed, err := ParseEasing(string(text))
	if err != nil {
		return err
	}
	*easing = parsed
	return nil
}

// TargetsAt returns the dial position in [0, 360) of each hand at
// the wall-clock time t, read in t's location.
func TargetsAt(t time.Time, easing Easing) Angles {
	hour, minute, second := t.Clock()

	var targets Angles
	targets[Hour] = float64(hour%12)*DegreesPerHour + float64(minute)*DegreesPerMinuteOfHour
	targets[Minute] = float64(minute) * DegreesPerMinute
	targets[Second] = float64(second) * DegreesPerSecond

	if easing == EasingCosine {
		targets[Second] = easedSecond(second, t.Nanosecond())
	}
	return targets
}

// easedSecond places the second hand between second and second+1
// using (1 - cos(pi*f)) / 2 where f is the elapsed fraction of the
// current second in whole milliseconds.
func easedSecond(second, nanosecond int) float64 {
	fraction := float64(nanosecond/int(time.Millisecond)) / 1000
	eased := (1 - math.Cos(math.Pi*fraction)) / 2

	base := float64(second) * DegreesPerSecond
	angle := base + eased*DegreesPerSecond
	if ceiling := base + DegreesPerSecond; angle > ceiling {
		angle = ceiling
	}
	return Normalize(angle)
}
