// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package svgface renders the clock as a standalone SVG document.
//
// The face is a 200x200 viewBox: a grey rim, a black dial, three
// hands drawn as lines from the center pointing at 12 o'clock, and a
// center cap. Each hand sits in its own group whose transform is
// rotate(angle), where angle is the cumulative angle from the driver.
// Because the angle never wraps, a browser applying the CSS transition
// below always turns the hand forward across the top:
//
//	#hourHand   { transition: transform 0.5s cubic-bezier(0.2, 0.8, 0.2, 1.2); }
//	#minuteHand { transition: transform 0.5s cubic-bezier(0.2, 0.8, 0.2, 1.2); }
//	#secondHand { transition: transform 0.3s cubic-bezier(0.2, 0.8, 0.2, 1.2); }
//
// While animation is disabled (the reinitialize tick), the document
// carries "transition: none" instead so the jump is instantaneous.
//
// [Sink] adapts a [Face] to driver.Sink, rewriting the document each
// time a frame completes.
package svgface
