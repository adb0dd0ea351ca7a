// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bureau-foundation/clockface/lib/clock"
	"github.com/bureau-foundation/clockface/lib/dial"
	"github.com/bureau-foundation/clockface/lib/testutil"
)

// tenNineThirty is the wall-clock time most tests start from:
// targets hour=304.5, minute=54, second=180.
var tenNineThirty = time.Date(2026, 3, 14, 10, 9, 30, 0, time.UTC)

type eventKind int

const (
	eventEmit eventKind = iota
	eventEnable
	eventDisable
)

type sinkEvent struct {
	kind  eventKind
	hand  dial.Hand
	angle float64
}

// recordingSink captures every call in order.
type recordingSink struct {
	events []sinkEvent
}

func (sink *recordingSink) Emit(hand dial.Hand, angle float64) {
	sink.events = append(sink.events, sinkEvent{kind: eventEmit, hand: hand, angle: angle})
}

func (sink *recordingSink) EnableAnimation() {
	sink.events = append(sink.events, sinkEvent{kind: eventEnable})
}

func (sink *recordingSink) DisableAnimation() {
	sink.events = append(sink.events, sinkEvent{kind: eventDisable})
}

// take returns the events recorded since the last take.
func (sink *recordingSink) take() []sinkEvent {
	events := sink.events
	sink.events = nil
	return events
}

// frame extracts the emitted angles from a batch of events, failing
// unless it contains exactly one emit per hand in Hand order.
func frame(t *testing.T, events []sinkEvent) dial.Angles {
	t.Helper()
	var emits []sinkEvent
	for _, event := range events {
		if event.kind == eventEmit {
			emits = append(emits, event)
		}
	}
	if len(emits) != len(dial.Hands) {
		t.Fatalf("got %d emits, want %d: %+v", len(emits), len(dial.Hands), events)
	}
	var angles dial.Angles
	for index, emit := range emits {
		if emit.hand != dial.Hands[index] {
			t.Fatalf("emit %d is for %s, want %s", index, emit.hand, dial.Hands[index])
		}
		angles[emit.hand] = emit.angle
	}
	return angles
}

func countKind(events []sinkEvent, kind eventKind) int {
	count := 0
	for _, event := range events {
		if event.kind == kind {
			count++
		}
	}
	return count
}

func TestStartEmitsReinitializeTickImmediately(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	sink := &recordingSink{}
	clockDriver := New(fake, Options{})

	clockDriver.Start(sink)

	events := sink.take()
	if events[0].kind != eventDisable {
		t.Errorf("first event = %+v, want DisableAnimation", events[0])
	}
	want := dial.Angles{dial.Hour: 304.5, dial.Minute: 54, dial.Second: 180}
	if got := frame(t, events); got != want {
		t.Errorf("reinitialize frame = %v, want %v", got, want)
	}
	if countKind(events, eventEnable) != 0 {
		t.Error("EnableAnimation sent before the settle delay")
	}
	if state := clockDriver.State(); state != Settling {
		t.Errorf("State() = %s, want settling", state)
	}
}

func TestSettleDelayEnablesAnimation(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	sink := &recordingSink{}
	clockDriver := New(fake, Options{SettleDelay: 200 * time.Millisecond})
	clockDriver.Start(sink)
	sink.take()

	fake.Advance(199 * time.Millisecond)
	if events := sink.take(); len(events) != 0 {
		t.Fatalf("events before settle delay elapsed: %+v", events)
	}

	fake.Advance(time.Millisecond)
	events := sink.take()
	if len(events) != 1 || events[0].kind != eventEnable {
		t.Fatalf("events at settle = %+v, want exactly EnableAnimation", events)
	}
	if state := clockDriver.State(); state != Running {
		t.Errorf("State() = %s, want running", state)
	}
}

func TestRunningTicksOncePerInterval(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	sink := &recordingSink{}
	clockDriver := New(fake, Options{})
	clockDriver.Start(sink)
	fake.Advance(DefaultSettleDelay)
	sink.take()

	fake.Advance(999 * time.Millisecond)
	if events := sink.take(); len(events) != 0 {
		t.Fatalf("tick fired early: %+v", events)
	}

	fake.Advance(time.Millisecond)
	want := dial.Angles{dial.Hour: 304.5, dial.Minute: 54, dial.Second: 186}
	if got := frame(t, sink.take()); got != want {
		t.Errorf("first periodic frame = %v, want %v", got, want)
	}

	for range 3 {
		fake.Advance(time.Second)
	}
	if got := frame(t, sink.take()[6:]); got[dial.Second] != 204 {
		t.Errorf("second hand after four ticks = %v, want 204", got[dial.Second])
	}
	if ticks := clockDriver.Ticks(); ticks != 5 {
		t.Errorf("Ticks() = %d, want 5 (one reinitialize, four periodic)", ticks)
	}
}

func TestSecondHandCrossesTheTopForwards(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 3, 14, 10, 9, 58, 0, time.UTC))
	sink := &recordingSink{}
	clockDriver := New(fake, Options{})
	clockDriver.Start(sink)
	sink.take()
	fake.Advance(DefaultSettleDelay)
	sink.take()

	var seconds []float64
	for range 4 {
		fake.Advance(time.Second)
		seconds = append(seconds, frame(t, sink.take())[dial.Second])
	}

	want := []float64{354, 360, 366, 372}
	for index := range want {
		if seconds[index] != want[index] {
			t.Fatalf("second hand sequence = %v, want %v", seconds, want)
		}
	}

	minute := clockDriver.Tracker().Angle(dial.Minute)
	if minute != 60 {
		t.Errorf("minute hand after rollover = %v, want 60", minute)
	}
}

func TestStopPreventsPendingTicks(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	sink := &recordingSink{}
	clockDriver := New(fake, Options{})
	clockDriver.Start(sink)
	fake.Advance(DefaultSettleDelay)
	fake.Advance(time.Second)
	sink.take()

	clockDriver.Stop()
	fake.Advance(10 * time.Second)

	if events := sink.take(); len(events) != 0 {
		t.Fatalf("sink called after Stop: %+v", events)
	}
	if pending := fake.PendingCount(); pending != 0 {
		t.Errorf("PendingCount = %d after Stop, want 0", pending)
	}
	if state := clockDriver.State(); state != Idle {
		t.Errorf("State() = %s, want idle", state)
	}
}

func TestStopDuringSettlePreventsEnable(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	sink := &recordingSink{}
	clockDriver := New(fake, Options{})
	clockDriver.Start(sink)
	sink.take()

	clockDriver.Stop()
	fake.Advance(time.Minute)

	if events := sink.take(); len(events) != 0 {
		t.Fatalf("sink called after Stop during settle: %+v", events)
	}
}

func TestStopIsIdempotentAndSafeBeforeStart(t *testing.T) {
	clockDriver := New(clock.Fake(tenNineThirty), Options{})
	clockDriver.Stop()
	clockDriver.Stop()
	if state := clockDriver.State(); state != Idle {
		t.Fatalf("State() = %s, want idle", state)
	}

	clockDriver.Start(&recordingSink{})
	clockDriver.Stop()
	clockDriver.Stop()
	if state := clockDriver.State(); state != Idle {
		t.Fatalf("State() after double Stop = %s, want idle", state)
	}
}

func TestStartWhileRunningRestartsCadence(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	first := &recordingSink{}
	clockDriver := New(fake, Options{})
	clockDriver.Start(first)
	fake.Advance(DefaultSettleDelay)
	fake.Advance(500 * time.Millisecond)

	second := &recordingSink{}
	clockDriver.Start(second)
	if state := clockDriver.State(); state != Settling {
		t.Fatalf("State() after restart = %s, want settling", state)
	}
	first.take()
	second.take()

	// New settle at 0.60s arms the new cadence for 1.60s. The old
	// cadence would have ticked at 1.05s.
	fake.Advance(DefaultSettleDelay)
	fake.Advance(450 * time.Millisecond)
	if events := first.take(); len(events) != 0 {
		t.Fatalf("old sink received events after restart: %+v", events)
	}
	if emits := countKind(second.take(), eventEmit); emits != 0 {
		t.Fatalf("old cadence ticked into the new sink (%d emits)", emits)
	}

	fake.Advance(550 * time.Millisecond)
	if emits := countKind(second.take(), eventEmit); emits != len(dial.Hands) {
		t.Fatalf("new cadence emitted %d times, want %d", emits, len(dial.Hands))
	}
	if pending := fake.PendingCount(); pending != 1 {
		t.Errorf("PendingCount = %d, want exactly one armed tick", pending)
	}
}

func TestResyncSnapsAccumulatedAngles(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 3, 14, 10, 9, 58, 0, time.UTC))
	sink := &recordingSink{}
	clockDriver := New(fake, Options{})
	clockDriver.Start(sink)
	fake.Advance(DefaultSettleDelay)
	for range 3 {
		fake.Advance(time.Second)
	}
	if got := clockDriver.Tracker().Angle(dial.Second); got != 366 {
		t.Fatalf("accumulated second angle = %v, want 366", got)
	}
	sink.take()

	clockDriver.Resync()

	events := sink.take()
	if events[0].kind != eventDisable {
		t.Errorf("Resync did not disable animation first: %+v", events[0])
	}
	if got := frame(t, events)[dial.Second]; got != 6 {
		t.Errorf("second hand after Resync = %v, want 6 (direct set)", got)
	}
	if state := clockDriver.State(); state != Settling {
		t.Errorf("State() after Resync = %s, want settling", state)
	}

	fake.Advance(DefaultSettleDelay)
	if countKind(sink.take(), eventEnable) != 1 {
		t.Error("EnableAnimation not sent after Resync settle")
	}
}

func TestResyncOnIdleDriverIsNoop(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	clockDriver := New(fake, Options{})
	clockDriver.Resync()
	if state := clockDriver.State(); state != Idle {
		t.Fatalf("State() = %s, want idle", state)
	}
	if pending := fake.PendingCount(); pending != 0 {
		t.Fatalf("Resync on idle driver armed %d timers", pending)
	}
}

func TestNilSinkDropsEmits(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	clockDriver := New(fake, Options{})
	clockDriver.Start(nil)
	fake.Advance(DefaultSettleDelay)
	fake.Advance(time.Second)
	if ticks := clockDriver.Ticks(); ticks != 2 {
		t.Errorf("Ticks() = %d, want 2", ticks)
	}
	clockDriver.Stop()
}

func TestTypedNilSinkDropsEmits(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	clockDriver := New(fake, Options{})
	var sink *recordingSink
	clockDriver.Start(sink)
	fake.Advance(DefaultSettleDelay)
	fake.Advance(time.Second)
	clockDriver.Resync()
	if ticks := clockDriver.Ticks(); ticks != 3 {
		t.Errorf("Ticks() = %d, want 3", ticks)
	}
	clockDriver.Stop()
}

func TestEachStartGetsAFreshTracker(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	clockDriver := New(fake, Options{})
	clockDriver.Start(nil)
	first := clockDriver.Tracker()
	clockDriver.Start(nil)
	if clockDriver.Tracker() == first {
		t.Fatal("Start reused the previous tracker without Options.Tracker")
	}
}

func TestSharedTrackerKeepsDriversInLockstep(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 3, 14, 10, 9, 58, 0, time.UTC))
	shared := dial.NewTracker()
	panel := New(fake, Options{Tracker: shared})
	sidebar := New(fake, Options{Tracker: shared})
	panelSink := &recordingSink{}
	sidebarSink := &recordingSink{}

	panel.Start(panelSink)
	fake.Advance(DefaultSettleDelay)
	fake.Advance(time.Second)
	sidebar.Start(sidebarSink)

	if panel.Tracker() != sidebar.Tracker() {
		t.Fatal("drivers given the same tracker hold different ones")
	}
	// The sidebar's reinitialize tick wrote 354 straight into the
	// shared table, which the panel's next tick advances from.
	fake.Advance(time.Second)
	panelSink.take()
	if got := shared.Angle(dial.Second); got != 360 {
		t.Errorf("shared second angle = %v, want 360", got)
	}
}

func TestAlignToSecondTicksOnBoundaries(t *testing.T) {
	start := tenNineThirty.Add(300 * time.Millisecond)
	fake := clock.Fake(start)
	sink := &recordingSink{}
	clockDriver := New(fake, Options{AlignToSecond: true})
	clockDriver.Start(sink)
	fake.Advance(DefaultSettleDelay)
	sink.take()

	// Settled at .350; the next boundary is 650ms away.
	fake.Advance(649 * time.Millisecond)
	if events := sink.take(); len(events) != 0 {
		t.Fatalf("aligned tick fired early: %+v", events)
	}
	fake.Advance(time.Millisecond)
	if got := frame(t, sink.take())[dial.Second]; got != 186 {
		t.Errorf("aligned tick second angle = %v, want 186", got)
	}
	if now := fake.Now(); now.Nanosecond() != 0 {
		t.Errorf("aligned tick fired at %v, not on a second boundary", now)
	}
}

func TestCosineEasingWithSubsecondInterval(t *testing.T) {
	fake := clock.Fake(tenNineThirty)
	sink := &recordingSink{}
	clockDriver := New(fake, Options{
		Interval:    100 * time.Millisecond,
		SettleDelay: 100 * time.Millisecond,
		Easing:      dial.EasingCosine,
	})
	clockDriver.Start(sink)
	fake.Advance(100 * time.Millisecond)
	sink.take()

	// Tick at 10:09:30.200: fraction 0.2 of the second.
	fake.Advance(100 * time.Millisecond)
	got := frame(t, sink.take())[dial.Second]
	if got <= 180 || got >= 181 {
		t.Errorf("eased second angle at 200ms = %v, want between 180 and 181", got)
	}
}

func TestLocationOption(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	fake := clock.Fake(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	sink := &recordingSink{}
	clockDriver := New(fake, Options{Location: zone})
	clockDriver.Start(sink)
	if got := frame(t, sink.take())[dial.Hour]; got != 0 {
		t.Errorf("hour angle at 12:00 local = %v, want 0", got)
	}
}

func TestTeeForwardsToEverySink(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	var missing *recordingSink
	tee := Tee(first, nil, missing, second)

	tee.Emit(dial.Minute, 42)
	tee.EnableAnimation()
	tee.(AnimationDisabler).DisableAnimation()

	for _, sink := range []*recordingSink{first, second} {
		events := sink.take()
		if len(events) != 3 {
			t.Fatalf("tee delivered %d events, want 3", len(events))
		}
		if events[0].hand != dial.Minute || events[0].angle != 42 {
			t.Errorf("tee emit = %+v", events[0])
		}
	}
}

func TestUntilBoundary(t *testing.T) {
	tests := []struct {
		offset time.Duration
		want   time.Duration
	}{
		{0, time.Second},
		{300 * time.Millisecond, 700 * time.Millisecond},
		{999 * time.Millisecond, time.Millisecond},
	}
	for _, test := range tests {
		if got := untilBoundary(tenNineThirty.Add(test.offset), time.Second); got != test.want {
			t.Errorf("untilBoundary(+%v) = %v, want %v", test.offset, got, test.want)
		}
	}
}

// guardedSink reports every emit on a channel and fails the test if
// an emit arrives after closed is set.
type guardedSink struct {
	t      *testing.T
	emits  chan dial.Hand
	closed atomic.Bool
}

func (sink *guardedSink) Emit(hand dial.Hand, angle float64) {
	if sink.closed.Load() {
		sink.t.Errorf("emit of %s=%v after Stop returned", hand, angle)
	}
	select {
	case sink.emits <- hand:
	default:
	}
}

func (sink *guardedSink) EnableAnimation() {}

func TestStopWithRealClockSilencesSink(t *testing.T) {
	sink := &guardedSink{t: t, emits: make(chan dial.Hand, 64)}
	clockDriver := New(clock.Real(), Options{
		Interval:    time.Millisecond,
		SettleDelay: time.Millisecond,
	})
	clockDriver.Start(sink)

	// Reinitialize tick plus at least one periodic tick.
	for range 2 * len(dial.Hands) {
		testutil.RequireReceive(t, sink.emits, 5*time.Second, "waiting for driver emits")
	}

	clockDriver.Stop()
	sink.closed.Store(true)

	testutil.RequireReceive(t, clock.Real().After(20*time.Millisecond), time.Second, "waiting out stale callbacks")
}
