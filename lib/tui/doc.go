// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks shared by the
// interactive clock and the one-shot printer: the color [Theme],
// eased hand [Motion] that mirrors the SVG face's CSS transitions,
// and ANSI-aware layout helpers for centering and splicing a caption
// onto a rendered face.
//
// Nothing here knows about bubbletea programs; faceui owns the event
// loop and calls into this package to decide what to draw.
package tui
