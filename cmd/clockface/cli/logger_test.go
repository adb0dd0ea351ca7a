// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCommandLoggerUsesJSONWhenNotATerminal(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("tick", "hand", "second")

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buffer.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "tick" || record["hand"] != "second" {
		t.Errorf("record = %v", record)
	}
}

func TestFanoutHandlerRespectsEachLevel(t *testing.T) {
	var verbose, quiet bytes.Buffer
	logger := slog.New(FanoutHandler{
		slog.NewJSONHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}).With("command", "record")

	logger.Debug("settling")
	logger.Warn("recording stopped")

	if got := strings.Count(verbose.String(), "\n"); got != 2 {
		t.Errorf("debug handler got %d records, want 2", got)
	}
	if got := strings.Count(quiet.String(), "\n"); got != 1 {
		t.Errorf("warn handler got %d records, want 1", got)
	}
	if !strings.Contains(quiet.String(), `"command":"record"`) {
		t.Errorf("attributes not propagated: %s", quiet.String())
	}
}

func TestOpenFileLogHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockface.log")
	handler, closer, err := OpenFileLogHandler(path)
	if err != nil {
		t.Fatalf("OpenFileLogHandler: %v", err)
	}
	slog.New(handler).Debug("clock driver running")
	closer()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "clock driver running") {
		t.Errorf("log file missing debug record: %s", data)
	}
}
