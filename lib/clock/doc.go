// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the time source behind every clockface cadence.
//
// The clock driver never calls time.Now or time.AfterFunc directly.
// It takes a [Clock] and schedules each tick as a one-shot callback
// that re-arms itself, so the only capabilities it needs are "what
// time is it", "call me later", and "never mind". Production wiring
// passes [Real]; tests pass [Fake] and step time explicitly:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 10, 9, 30, 0, time.Local))
//	d := driver.New(fake, driver.Options{})
//	d.Start(sink)               // reinitialize tick fires immediately
//	fake.Advance(50 * time.Millisecond) // settle delay elapses
//	fake.Advance(time.Second)   // first animated tick
//
// AfterFunc callbacks on a [FakeClock] run synchronously inside
// Advance, in deadline order. A callback that re-arms itself with a
// positive delay is never fired twice by the same Advance call, which
// keeps one-second stepping deterministic.
package clock
