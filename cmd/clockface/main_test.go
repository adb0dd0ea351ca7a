// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/clock"
)

var testStart = time.Date(2026, 3, 14, 10, 9, 30, 0, time.UTC)

type testOutput struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// testEnvironment returns an environment on a fake clock with no
// config file and no terminal.
func testEnvironment(fake *clock.FakeClock, variables map[string]string) (environment, *testOutput) {
	output := &testOutput{}
	return environment{
		stdout: &output.stdout,
		stderr: &output.stderr,
		clock:  fake,
		getenv: func(name string) string { return variables[name] },
		terminalSize: func() (int, int, bool) {
			return 0, 0, false
		},
	}, output
}

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) *cli.ToolError {
	t.Helper()
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) {
		t.Fatalf("error %v (%T) is not a ToolError", err, err)
	}
	if toolError.Category != want {
		t.Fatalf("category = %s, want %s (error: %v)", toolError.Category, want, err)
	}
	return toolError
}

// recordSession records two ticks after the reinitialize frame: 4
// reinitialize frames, 1 enable, and 3 emits per tick.
func recordSession(t *testing.T, compression string) string {
	t.Helper()
	fake := clock.Fake(testStart)
	env, output := testEnvironment(fake, nil)
	path := filepath.Join(t.TempDir(), "nested", "session.clkf")

	result := make(chan error, 1)
	go func() {
		result <- run(context.Background(), []string{
			"record", "--out", path, "--duration", "3s",
			"--compression", compression, "--location", "UTC",
		}, env)
	}()

	// Settle timer and the --duration deadline.
	fake.WaitForTimers(2)
	fake.Advance(50 * time.Millisecond)
	fake.Advance(time.Second)
	fake.Advance(time.Second)
	// Reach the deadline at 3s without the tick due at 3.05s.
	fake.Advance(950 * time.Millisecond)

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("record: %v\nstderr: %s", err, output.stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("record did not return after its deadline")
	}
	if !strings.Contains(output.stderr.String(), "recording saved") {
		t.Errorf("stderr does not report the saved recording:\n%s", output.stderr.String())
	}
	return path
}

func TestVersion(t *testing.T) {
	env, output := testEnvironment(clock.Fake(testStart), nil)
	if err := run(context.Background(), []string{"--version"}, env); err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.HasPrefix(output.stdout.String(), "clockface ") {
		t.Errorf("version output = %q, want clockface prefix", output.stdout.String())
	}
}

func TestHelpListsSubcommands(t *testing.T) {
	env, output := testEnvironment(clock.Fake(testStart), nil)
	if err := run(context.Background(), []string{"--help"}, env); err != nil {
		t.Fatalf("--help: %v", err)
	}
	for _, candidate := range commands {
		if !strings.Contains(output.stderr.String(), candidate.name) {
			t.Errorf("help does not list %s", candidate.name)
		}
	}

	output.stderr.Reset()
	if err := run(context.Background(), []string{"record", "--help"}, env); err != nil {
		t.Fatalf("record --help: %v", err)
	}
	if !strings.Contains(output.stderr.String(), "--compression") {
		t.Errorf("record help does not list its flags:\n%s", output.stderr.String())
	}
}

func TestPrintHelp(t *testing.T) {
	env, output := testEnvironment(clock.Fake(testStart), nil)
	if err := run(context.Background(), []string{"print", "--help"}, env); err != nil {
		t.Fatalf("print --help: %v", err)
	}
	help := output.stderr.String()
	if !strings.HasPrefix(help, "Print the current time as a single clock face") {
		t.Errorf("print help does not start with its own usage:\n%s", help)
	}
	if !strings.Contains(help, "--radius") {
		t.Errorf("print help does not list its flags:\n%s", help)
	}
	if output.stdout.Len() != 0 {
		t.Errorf("print --help drew a face:\n%s", output.stdout.String())
	}
}

func TestUnknownSubcommand(t *testing.T) {
	env, _ := testEnvironment(clock.Fake(testStart), nil)
	err := run(context.Background(), []string{"stopwatch"}, env)
	toolError := requireCategory(t, err, cli.CategoryValidation)
	if toolError.Hint == "" {
		t.Error("unknown subcommand error has no hint")
	}
}

func TestUnknownFlag(t *testing.T) {
	env, _ := testEnvironment(clock.Fake(testStart), nil)
	err := run(context.Background(), []string{"print", "--bogus"}, env)
	requireCategory(t, err, cli.CategoryValidation)
}

func TestPrint(t *testing.T) {
	env, output := testEnvironment(clock.Fake(testStart), nil)
	err := run(context.Background(), []string{
		"print", "--radius", "5", "--color", "never", "--location", "UTC",
	}, env)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	face := output.stdout.String()
	if !strings.Contains(face, "10:09:30 UTC") || !strings.Contains(face, "◉") {
		t.Errorf("printed face missing caption or cap:\n%s", face)
	}
	if strings.Contains(face, "\x1b[") {
		t.Errorf("--color never printed escape sequences: %q", face)
	}
	// 11 face rows plus the caption.
	if lines := strings.Count(face, "\n"); lines != 12 {
		t.Errorf("printed %d lines, want 12", lines)
	}
}

func TestPrintRejectsColorMode(t *testing.T) {
	env, _ := testEnvironment(clock.Fake(testStart), nil)
	err := run(context.Background(), []string{"print", "--color", "sometimes"}, env)
	requireCategory(t, err, cli.CategoryValidation)
}

func TestConfigFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockface.yaml")
	if err := os.WriteFile(path, []byte("location: Asia/Tokyo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	env, output := testEnvironment(clock.Fake(testStart), map[string]string{
		"CLOCKFACE_CONFIG": path,
	})

	if err := run(context.Background(), []string{"print", "--color", "never", "--hide-seconds"}, env); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(output.stdout.String(), "19:09 JST") {
		t.Errorf("face not shown in the configured zone:\n%s", output.stdout.String())
	}

	// --location overrides the file.
	output.stdout.Reset()
	if err := run(context.Background(), []string{"print", "--color", "never", "--location", "UTC"}, env); err != nil {
		t.Fatalf("print --location: %v", err)
	}
	if !strings.Contains(output.stdout.String(), "10:09:30 UTC") {
		t.Errorf("--location did not override the config:\n%s", output.stdout.String())
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockface.yaml")
	content := "driver:\n  interval: 0s\n  second_hand: sweep\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	env, _ := testEnvironment(clock.Fake(testStart), nil)

	err := run(context.Background(), []string{"print", "--config", path}, env)
	toolError := requireCategory(t, err, cli.CategoryValidation)
	for _, field := range []string{"driver.interval", "driver.second_hand"} {
		if !strings.Contains(toolError.Error(), field) {
			t.Errorf("error does not mention %s: %v", field, toolError)
		}
	}

	err = run(context.Background(), []string{"print", "--config", filepath.Join(t.TempDir(), "absent.yaml")}, env)
	requireCategory(t, err, cli.CategoryNotFound)

	err = run(context.Background(), []string{"print", "--easing", "sweep"}, env)
	requireCategory(t, err, cli.CategoryValidation)
}

func TestSVGOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.svg")
	env, _ := testEnvironment(clock.Fake(testStart), nil)

	if err := run(context.Background(), []string{"svg", "--once", "--out", path, "--location", "UTC"}, env); err != nil {
		t.Fatalf("svg --once: %v", err)
	}
	document, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading svg: %v", err)
	}
	for _, want := range []string{"rotate(304.5)", "rotate(54)", "rotate(180)", "transition: none"} {
		if !strings.Contains(string(document), want) {
			t.Errorf("document missing %q:\n%s", want, document)
		}
	}
}

func TestSVGStreamStopsOnCancel(t *testing.T) {
	env, output := testEnvironment(clock.Fake(testStart), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, []string{"svg", "--location", "UTC"}, env); err != nil {
		t.Fatalf("svg: %v", err)
	}
	// Only the reinitialize frame is written before the cancelled
	// context stops the driver.
	if count := strings.Count(output.stdout.String(), "<svg"); count != 1 {
		t.Errorf("wrote %d documents, want 1", count)
	}
}

func TestSVGRejectsBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockface.yaml")
	content := "face:\n  hand_colors:\n    second: \"red; display: none\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	env, _ := testEnvironment(clock.Fake(testStart), nil)

	err := run(context.Background(), []string{"svg", "--once", "--config", path}, env)
	requireCategory(t, err, cli.CategoryValidation)
}

func TestRecordThenList(t *testing.T) {
	path := recordSession(t, "zstd")
	env, output := testEnvironment(clock.Fake(testStart), nil)

	if err := run(context.Background(), []string{"replay", path, "--list"}, env); err != nil {
		t.Fatalf("replay --list: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(output.stdout.String(), "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("listed %d lines, want header plus 11 frames:\n%s", len(lines), output.stdout.String())
	}
	if lines[0] != "compression: zstd" {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "disable_animation") {
		t.Errorf("first frame = %q, want disable_animation", lines[1])
	}
	if !strings.Contains(lines[5], "enable_animation") {
		t.Errorf("fifth frame = %q, want enable_animation", lines[5])
	}
	if !strings.HasSuffix(lines[11], "second=192") {
		t.Errorf("last frame = %q, want second=192", lines[11])
	}
}

func TestReplayListTruncated(t *testing.T) {
	path := recordSession(t, "none")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Truncate(path, info.Size()-3); err != nil {
		t.Fatal(err)
	}
	env, output := testEnvironment(clock.Fake(testStart), nil)

	err = run(context.Background(), []string{"replay", path, "--list"}, env)
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("err = %v, want ExitError with code 1", err)
	}
	if !strings.Contains(output.stderr.String(), "recording ends after 10 frames") {
		t.Errorf("stderr = %q", output.stderr.String())
	}
	if frames := strings.Count(output.stdout.String(), "\n") - 1; frames != 10 {
		t.Errorf("listed %d frames before the damage, want 10", frames)
	}
}

func TestReplayToSVG(t *testing.T) {
	path := recordSession(t, "lz4")
	svgPath := filepath.Join(t.TempDir(), "replayed.svg")
	env, _ := testEnvironment(clock.Fake(testStart), nil)

	if err := run(context.Background(), []string{"replay", path, "--svg", svgPath, "--speed", "0"}, env); err != nil {
		t.Fatalf("replay --svg: %v", err)
	}
	document, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("reading svg: %v", err)
	}
	for _, want := range []string{"rotate(192)", "transition: transform"} {
		if !strings.Contains(string(document), want) {
			t.Errorf("final document missing %q:\n%s", want, document)
		}
	}
}

func TestReplayToSVGUsesConfiguredTransitions(t *testing.T) {
	path := recordSession(t, "none")
	configPath := filepath.Join(t.TempDir(), "clockface.yaml")
	content := "face:\n  transition:\n    hour: 2s\n    minute: 1s\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	svgPath := filepath.Join(t.TempDir(), "replayed.svg")
	env, _ := testEnvironment(clock.Fake(testStart), map[string]string{
		"CLOCKFACE_CONFIG": configPath,
	})

	if err := run(context.Background(), []string{"replay", path, "--svg", svgPath, "--speed", "0"}, env); err != nil {
		t.Fatalf("replay --svg: %v", err)
	}
	document, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("reading svg: %v", err)
	}
	for _, want := range []string{
		"#hourHand { transition: transform 2s ",
		"#minuteHand { transition: transform 1s ",
		"#secondHand { transition: transform 0.3s ",
	} {
		if !strings.Contains(string(document), want) {
			t.Errorf("final document missing %q:\n%s", want, document)
		}
	}
}

func TestReplayErrors(t *testing.T) {
	env, _ := testEnvironment(clock.Fake(testStart), nil)
	directory := t.TempDir()

	err := run(context.Background(), []string{"replay", filepath.Join(directory, "absent.clkf")}, env)
	requireCategory(t, err, cli.CategoryNotFound)

	notRecording := filepath.Join(directory, "notes.txt")
	if err := os.WriteFile(notRecording, []byte("hello, world"), 0644); err != nil {
		t.Fatal(err)
	}
	err = run(context.Background(), []string{"replay", notRecording, "--list"}, env)
	requireCategory(t, err, cli.CategoryValidation)

	err = run(context.Background(), []string{"replay"}, env)
	requireCategory(t, err, cli.CategoryValidation)
}
