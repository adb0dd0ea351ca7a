// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"
	"testing"
	"time"

	"github.com/bureau-foundation/clockface/lib/dial"
)

var start = time.Date(2026, 3, 14, 10, 9, 30, 0, time.UTC)

func TestCubicBezierEndpoints(t *testing.T) {
	for _, curve := range []Curve{StationCurve, CubicBezier(0.25, 0.1, 0.25, 1), Linear} {
		if got := curve(0); got != 0 {
			t.Errorf("curve(0) = %v, want 0", got)
		}
		if got := curve(1); got != 1 {
			t.Errorf("curve(1) = %v, want 1", got)
		}
	}
}

func TestCubicBezierLinearControlPoints(t *testing.T) {
	curve := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, progress := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := curve(progress); math.Abs(got-progress) > 1e-5 {
			t.Errorf("linear bezier(%v) = %v", progress, got)
		}
	}
}

func TestStationCurveOvershoots(t *testing.T) {
	peak := 0.0
	for step := 1; step < 100; step++ {
		peak = math.Max(peak, StationCurve(float64(step)/100))
	}
	if peak <= 1 {
		t.Fatalf("StationCurve peak = %v, want overshoot above 1", peak)
	}
	if peak > 1.1 {
		t.Fatalf("StationCurve peak = %v, overshoot larger than expected", peak)
	}
}

func TestMotionJumpsWhenNotAnimated(t *testing.T) {
	motion := NewMotion(StationCurve, DefaultDurations)
	motion.Retarget(dial.Second, 180, start)
	if got := motion.Angle(dial.Second, start); got != 180 {
		t.Fatalf("Angle right after retarget = %v, want 180", got)
	}
	if motion.Moving(start) {
		t.Error("Moving() = true without animation")
	}
}

func TestMotionInterpolatesWhenAnimated(t *testing.T) {
	motion := NewMotion(Linear, DefaultDurations)
	motion.Retarget(dial.Second, 354, start)
	motion.SetAnimated(true)

	motion.Retarget(dial.Second, 360, start)
	if got := motion.Angle(dial.Second, start); got != 354 {
		t.Errorf("Angle at start = %v, want 354", got)
	}
	halfway := start.Add(150 * time.Millisecond)
	if got := motion.Angle(dial.Second, halfway); math.Abs(got-357) > 1e-9 {
		t.Errorf("Angle halfway = %v, want 357", got)
	}
	if !motion.Moving(halfway) {
		t.Error("Moving() = false halfway through")
	}
	done := start.Add(300 * time.Millisecond)
	if got := motion.Angle(dial.Second, done); got != 360 {
		t.Errorf("Angle at end = %v, want 360", got)
	}
	if motion.Moving(done) {
		t.Error("Moving() = true after the transition")
	}
}

func TestMotionRetargetMidFlightStartsFromDisplayedAngle(t *testing.T) {
	motion := NewMotion(Linear, DefaultDurations)
	motion.SetAnimated(true)
	motion.Retarget(dial.Minute, 0, start)
	motion.Retarget(dial.Minute, 60, start)

	midway := start.Add(250 * time.Millisecond)
	motion.Retarget(dial.Minute, 66, midway)
	if got := motion.Angle(dial.Minute, midway); math.Abs(got-30) > 1e-9 {
		t.Errorf("Angle after mid-flight retarget = %v, want 30", got)
	}
	if got := motion.Target(dial.Minute); got != 66 {
		t.Errorf("Target = %v, want 66", got)
	}
}

func TestMotionDisableFinishesTransitions(t *testing.T) {
	motion := NewMotion(Linear, DefaultDurations)
	motion.SetAnimated(true)
	motion.Retarget(dial.Hour, 90, start)
	motion.SetAnimated(false)
	if got := motion.Angle(dial.Hour, start); got != 90 {
		t.Errorf("Angle after disabling animation = %v, want 90", got)
	}
}
