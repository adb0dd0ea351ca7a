// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package record captures a driver's output to a file and plays it
// back.
//
// A recording is a six-byte header followed by a CBOR sequence of
// [Frame] items, optionally compressed as one stream:
//
//	offset 0  "CLKF"          magic
//	offset 4  version (1)
//	offset 5  CompressionTag  none, lz4, or zstd
//	offset 6  body            CBOR frames through the compressor
//
// [Writer] implements driver.Sink and driver.AnimationDisabler, so a
// driver can record directly or through driver.Tee alongside a live
// view. [Reader] decodes frames one at a time, and [Replay] feeds them
// back into any sink with their original spacing.
package record
