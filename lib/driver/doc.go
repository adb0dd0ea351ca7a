// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package driver runs the tick cadence of an analogue clock face.
//
// A [Driver] reads the wall clock, turns it into dial targets, passes
// them through a [dial.Tracker], and emits the resulting cumulative
// angles to a [Sink]. It knows nothing about windows, panels, or
// terminals; the sink decides how a rotation is drawn.
//
// Lifecycle:
//
//	Idle --Start--> Settling --settle delay--> Running --Stop--> Idle
//	                   ^                          |
//	                   +---------Resync-----------+
//
// Entering Settling emits one reinitialize tick that writes the
// targets straight into the tracker, so the face jumps to the current
// time with animation off. After the settle delay the driver calls
// [Sink.EnableAnimation] and begins the periodic cadence, where every
// tick advances each hand along the shorter arc.
//
// Ticks of one driver never overlap: each tick arms the next only
// after it has emitted. Stop and Resync invalidate every callback that
// is already armed, including one blocked waiting for the driver, so
// no sink call happens for a stale cadence once they return.
//
// Sink methods are called with the driver's lock held. A sink must
// not call back into the same driver synchronously.
package driver
