// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dial holds the angle arithmetic of an analogue clock face.
//
// A [Tracker] remembers the last cumulative angle it handed out for
// each [Hand]. Cumulative angles are unbounded: the second hand of a
// clock that has run for an hour sits at 21600 degrees, not 0. A
// renderer that applies rotate(angle) with an eased transition
// therefore always animates forward across 12 o'clock instead of
// spinning back through a full turn.
//
// [Tracker.Advance] moves a hand by the shortest signed delta in (-180, 180]
// toward a target in [0, 360). [Tracker.Set] writes a target verbatim; the
// driver uses it for the first tick after a view appears, when the
// face should jump to the correct time without animating.
//
// [TargetsAt] converts a wall-clock time into target angles for all
// three hands, optionally easing the second hand within the current
// second (see [Easing]).
package dial
