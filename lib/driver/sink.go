// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"reflect"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// Sink receives hand rotations from a Driver. Calls are one-way and
// must not block for long; the driver holds its lock while emitting.
type Sink interface {
	// Emit reports hand's new cumulative angle in degrees.
	Emit(hand dial.Hand, angle float64)

	// EnableAnimation is called once per settle sequence, after the
	// reinitialize tick, when rotations should start animating.
	EnableAnimation()
}

// AnimationDisabler is implemented by sinks that need to turn
// animation off before a reinitialize tick (for example to clear a
// CSS transition so the jump is instantaneous).
type AnimationDisabler interface {
	DisableAnimation()
}

// Tee returns a Sink that forwards every call to each of sinks in
// order. Nil entries, including typed nil pointers, are skipped.
func Tee(sinks ...Sink) Sink {
	var kept teeSink
	for _, sink := range sinks {
		if !isNilSink(sink) {
			kept = append(kept, sink)
		}
	}
	return kept
}

type teeSink []Sink

func (tee teeSink) Emit(hand dial.Hand, angle float64) {
	for _, sink := range tee {
		sink.Emit(hand, angle)
	}
}

func (tee teeSink) EnableAnimation() {
	for _, sink := range tee {
		sink.EnableAnimation()
	}
}

func (tee teeSink) DisableAnimation() {
	for _, sink := range tee {
		if disabler, ok := sink.(AnimationDisabler); ok {
			disabler.DisableAnimation()
		}
	}
}

// isNilSink reports whether sink is nil or an interface holding a nil
// pointer, map, slice, func, or channel.
func isNilSink(sink Sink) bool {
	if sink == nil {
		return true
	}
	value := reflect.ValueOf(sink)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return value.IsNil()
	}
	return false
}
