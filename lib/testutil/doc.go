// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by the clockface test suites.
//
// Most tests step a clock.FakeClock and never wait on real time.
// [RequireReceive] and [RequireClosed] are the hang guards for the
// tests that must run real goroutines (a driver on clock.Real, a
// replay blocked on the fake clock in another goroutine).
// [RequireNoReceive] asserts that nothing has happened yet.
//
// [ChannelSink] satisfies driver.Sink and reports every call as a
// short string, so a test can compare a whole frame sequence with a
// string slice.
package testutil
