// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build version information for clockface.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/clockface/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Binaries built with plain go install fall back to the VCS stamp the
// toolchain embeds in the module build info.
package version
