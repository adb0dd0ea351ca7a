// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/clockface/lib/clock"
	"github.com/bureau-foundation/clockface/lib/dial"
)

const (
	// DefaultInterval is the steady-state tick period.
	DefaultInterval = time.Second

	// DefaultSettleDelay separates the reinitialize tick from
	// EnableAnimation. Long enough for a renderer to paint the
	// un-animated frame before transitions are switched back on.
	DefaultSettleDelay = 50 * time.Millisecond
)

// State is a driver lifecycle phase.
type State uint8

const (
	Idle State = iota
	Settling
	Running
)

func (state State) String() string {
	switch state {
	case Idle:
		return "idle"
	case Settling:
		return "settling"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", uint8(state))
	}
}

// Options configures a Driver. The zero value gives a one-second
// cadence, a 50ms settle delay, whole-second steps, and a fresh
// tracker per Start.
type Options struct {
	// Interval between periodic ticks. Zero or negative means
	// DefaultInterval.
	Interval time.Duration

	// SettleDelay between the reinitialize tick and
	// EnableAnimation. Zero or negative means DefaultSettleDelay.
	SettleDelay time.Duration

	// AlignToSecond schedules each periodic tick on the next
	// multiple of Interval in wall-clock time instead of Interval
	// after the previous one.
	AlignToSecond bool

	// Easing selects the second hand model.
	Easing dial.Easing

	// Location is the zone the wall clock is read in. Nil means
	// whatever location the clock's Now returns.
	Location *time.Location

	// Tracker, when non-nil, is shared across Start calls and with
	// any other driver given the same tracker. When nil, each Start
	// constructs a new one.
	Tracker *dial.Tracker

	// Logger receives lifecycle events at Debug. Nil discards.
	Logger *slog.Logger
}

func (options Options) withDefaults() Options {
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	if options.SettleDelay <= 0 {
		options.SettleDelay = DefaultSettleDelay
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	return options
}

// Driver emits hand rotations on a cadence. Create with New.
type Driver struct {
	clock   clock.Clock
	options Options
	logger  *slog.Logger

	mu sync.Mutex

	state State

	// generation is bumped whenever the armed timer is abandoned.
	// Callbacks carry the generation they were armed under and do
	// nothing if it no longer matches.
	generation uint64

	sink    Sink
	tracker *dial.Tracker
	timer   *clock.Timer
	ticks   uint64
}

// New returns an idle driver reading time from source.
func New(source clock.Clock, options Options) *Driver {
	options = options.withDefaults()
	return &Driver{
		clock:   source,
		options: options,
		logger:  options.Logger,
	}
}

// Start emits a reinitialize tick to sink immediately and enters
// Settling. Calling Start on a driver that is already Settling or
// Running abandons the old cadence and starts over with the new sink.
// A nil sink, or a typed nil such as a nil *svgface.Sink, is allowed;
// its emits are dropped.
func (driver *Driver) Start(sink Sink) {
	driver.mu.Lock()
	defer driver.mu.Unlock()

	if driver.state != Idle {
		driver.logger.Debug("restarting clock driver", "state", driver.state)
	}
	driver.cancelLocked()

	if isNilSink(sink) {
		sink = nil
	}
	driver.sink = sink
	if driver.options.Tracker != nil {
		driver.tracker = driver.options.Tracker
	} else {
		driver.tracker = dial.NewTracker()
	}
	driver.settleLocked()
}

// Stop cancels the cadence and returns the driver to Idle. After Stop
// returns the sink is never called again by this driver. Stop is
// idempotent and safe on a driver that was never started.
func (driver *Driver) Stop() {
	driver.mu.Lock()
	defer driver.mu.Unlock()

	if driver.state == Idle {
		return
	}
	driver.cancelLocked()
	driver.state = Idle
	driver.sink = nil
	driver.logger.Debug("clock driver stopped", "ticks", driver.ticks)
}

// Resync reruns the snap-then-animate sequence against the current
// sink, for a view that has just become visible again. No-op when
// Idle.
func (driver *Driver) Resync() {
	driver.mu.Lock()
	defer driver.mu.Unlock()

	if driver.state == Idle {
		return
	}
	driver.cancelLocked()
	driver.settleLocked()
}

// State returns the current lifecycle phase.
func (driver *Driver) State() State {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.state
}

// Tracker returns the tracker in use, or nil before the first Start.
func (driver *Driver) Tracker() *dial.Tracker {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.tracker
}

// Ticks returns how many updates (reinitialize and periodic) have been
// emitted since New.
func (driver *Driver) Ticks() uint64 {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.ticks
}

// cancelLocked disarms the pending timer and invalidates any callback
// that already escaped it.
func (driver *Driver) cancelLocked() {
	if driver.timer != nil {
		driver.timer.Stop()
		driver.timer = nil
	}
	driver.generation++
}

// settleLocked emits the reinitialize tick and arms the settle timer.
func (driver *Driver) settleLocked() {
	driver.state = Settling
	generation := driver.generation

	if disabler, ok := driver.sink.(AnimationDisabler); ok {
		disabler.DisableAnimation()
	}
	driver.updateLocked(true)

	driver.timer = driver.clock.AfterFunc(driver.options.SettleDelay, func() {
		driver.settled(generation)
	})
	driver.logger.Debug("clock driver settling", "settle_delay", driver.options.SettleDelay)
}

func (driver *Driver) settled(generation uint64) {
	driver.mu.Lock()
	defer driver.mu.Unlock()

	if generation != driver.generation || driver.state != Settling {
		return
	}
	driver.state = Running
	if driver.sink != nil {
		driver.sink.EnableAnimation()
	}
	driver.logger.Debug("clock driver running", "interval", driver.options.Interval)
	driver.armLocked(generation)
}

func (driver *Driver) tick(generation uint64) {
	driver.mu.Lock()
	defer driver.mu.Unlock()

	if generation != driver.generation || driver.state != Running {
		return
	}
	driver.updateLocked(false)
	driver.armLocked(generation)
}

// armLocked schedules the next periodic tick.
func (driver *Driver) armLocked(generation uint64) {
	delay := driver.options.Interval
	if driver.options.AlignToSecond {
		delay = untilBoundary(driver.clock.Now(), driver.options.Interval)
	}
	driver.timer = driver.clock.AfterFunc(delay, func() {
		driver.tick(generation)
	})
}

// updateLocked reads the wall clock and emits every hand. A
// reinitialize update writes targets directly into the tracker.
func (driver *Driver) updateLocked(reinitialize bool) {
	now := driver.clock.Now()
	if driver.options.Location != nil {
		now = now.In(driver.options.Location)
	}
	targets := dial.TargetsAt(now, driver.options.Easing)

	for _, hand := range dial.Hands {
		var angle float64
		if reinitialize {
			angle = driver.tracker.Set(hand, targets[hand])
		} else {
			angle = driver.tracker.Advance(hand, targets[hand])
		}
		if driver.sink != nil {
			driver.sink.Emit(hand, angle)
		}
	}
	driver.ticks++
}

// untilBoundary returns the time from now to the next multiple of
// interval since the Unix epoch. The result is in (0, interval].
func untilBoundary(now time.Time, interval time.Duration) time.Duration {
	remainder := time.Duration(now.UnixNano() % int64(interval))
	if remainder < 0 {
		remainder += interval
	}
	return interval - remainder
}
