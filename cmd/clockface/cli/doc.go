// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the error and logging conventions shared by the
// clockface subcommands.
//
// Commands return a categorized [ToolError] for failures the user can
// act on (bad flags, missing files) and plain wrapped errors for
// everything else. main maps [ExitError] to its exit code without
// printing, and prints any other error with its hint.
package cli
