// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR configuration shared by every on-disk
// format in clockface.
//
// Recordings are CBOR sequences (RFC 8742): one frame item after
// another with no framing. The encoder uses Core Deterministic
// Encoding so two runs over the same fake clock produce identical
// bytes, which keeps recordings diffable and testable.
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// Types that implement encoding.TextMarshaler (dial.Hand, dial.Easing)
// are written as text strings. Timestamps are RFC 3339 strings with
// nanoseconds.
//
// Struct tags: types that are only ever written as CBOR use `cbor`
// tags. Types that are also printed as JSON by the CLI use `json` tags
// only; fxamacker/cbor falls back to them.
package codec
