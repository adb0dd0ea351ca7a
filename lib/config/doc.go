// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads clockface configuration.
//
// Configuration comes from a single file named by either the
// CLOCKFACE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no file
// search. Without either, commands use [Default].
//
// Files are YAML. Files ending in .json or .jsonc are accepted as JSON
// with comments and trailing commas.
//
//	location: Europe/Berlin
//	driver:
//	  interval: 250ms
//	  second_hand: cosine
//	record:
//	  path: ${XDG_STATE_HOME:-/var/tmp}/clockface.clkf
//	  compression: lz4
//
// Durations are Go duration strings. They stay strings in [Config] so
// [Config.Validate] can report every malformed field at once;
// [Config.DriverSettings] and [Config.Transitions] return them parsed.
//
// Variable expansion (${HOME}, ${VAR:-default}) applies to
// record.path only.
package config
