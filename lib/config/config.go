// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// EnvironmentVariable names the config file for [Load].
const EnvironmentVariable = "CLOCKFACE_CONFIG"

// Config is the clockface configuration.
type Config struct {
	// Location is the IANA zone the clock shows, e.g.
	// "Europe/Berlin". Empty means the local zone.
	Location string `yaml:"location"`

	// Driver configures the tick cadence.
	Driver DriverConfig `yaml:"driver"`

	// Face configures the SVG face.
	Face FaceConfig `yaml:"face"`

	// Record configures frame recording.
	Record RecordConfig `yaml:"record"`
}

// DriverConfig configures the clock driver.
type DriverConfig struct {
	// Interval between periodic ticks, as a Go duration.
	// Default: 1s
	Interval string `yaml:"interval"`

	// SettleDelay between the reinitialize tick and re-enabling
	// animation. Default: 50ms
	SettleDelay string `yaml:"settle_delay"`

	// AlignToSecond schedules ticks on wall-clock interval
	// boundaries. Default: false
	AlignToSecond bool `yaml:"align_to_second"`

	// SecondHand is "step" or "cosine". Default: step
	SecondHand string `yaml:"second_hand"`
}

// FaceConfig configures colors and transitions of the SVG face. Colors
// are CSS color literals.
type FaceConfig struct {
	HandColors HandColors `yaml:"hand_colors"`
	DialColor  string     `yaml:"dial_color"`
	RimColor   string     `yaml:"rim_color"`

	// Transition lengths as Go durations. Default: 500ms, 500ms,
	// 300ms.
	Transition HandDurations `yaml:"transition"`
}

// HandColors is one CSS color per hand.
type HandColors struct {
	Hour   string `yaml:"hour"`
	Minute string `yaml:"minute"`
	Second string `yaml:"second"`
}

// HandDurations is one duration string per hand.
type HandDurations struct {
	Hour   string `yaml:"hour"`
	Minute string `yaml:"minute"`
	Second string `yaml:"second"`
}

// RecordConfig configures `clockface record`.
type RecordConfig struct {
	// Path of the recording. ${VAR} and ${VAR:-default} are expanded.
	// Default: ${HOME}/.cache/clockface/session.clkf
	Path string `yaml:"path"`

	// Compression is "none", "lz4", or "zstd". Default: zstd
	Compression string `yaml:"compression"`
}

// Default returns the configuration used when no file is given. The
// face colors match the built-in SVG style.
func Default() *Config {
	return &Config{
		Driver: DriverConfig{
			Interval:    "1s",
			SettleDelay: "50ms",
			SecondHand:  "step",
		},
		Face: FaceConfig{
			HandColors: HandColors{
				Hour:   "white",
				Minute: "white",
				Second: "rgb(255, 140, 0)",
			},
			DialColor: "black",
			RimColor:  "rgb(179, 179, 179)",
			Transition: HandDurations{
				Hour:   "500ms",
				Minute: "500ms",
				Second: "300ms",
			},
		},
		Record: RecordConfig{
			Path:        "${HOME}/.cache/clockface/session.clkf",
			Compression: "zstd",
		},
	}
}

// Load loads configuration from the file named by CLOCKFACE_CONFIG.
// It fails if the variable is not set; callers that can run without a
// file check the variable first and use [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your clockface.yaml, or use --config", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over [Default]. Files ending
// in .json or .jsonc are read as JSON with comments and trailing
// commas; anything else as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.ExpandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML, so one decoder serves both once
		// comments are stripped.
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// ExpandVariables expands ${VAR} and ${VAR:-default} in path fields.
// LoadFile calls it; callers starting from Default call it themselves.
func (c *Config) ExpandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Record.Path = expandVars(c.Record.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.TimeLocation(); err != nil {
		errs = append(errs, err)
	}

	if _, err := positiveDuration("driver.interval", c.Driver.Interval); err != nil {
		errs = append(errs, err)
	}
	if _, err := positiveDuration("driver.settle_delay", c.Driver.SettleDelay); err != nil {
		errs = append(errs, err)
	}
	if _, err := dial.ParseEasing(c.Driver.SecondHand); err != nil {
		errs = append(errs, fmt.Errorf("driver.second_hand: %w", err))
	}

	transitions := []struct {
		field string
		value string
	}{
		{"face.transition.hour", c.Face.Transition.Hour},
		{"face.transition.minute", c.Face.Transition.Minute},
		{"face.transition.second", c.Face.Transition.Second},
	}
	for _, transition := range transitions {
		if _, err := nonNegativeDuration(transition.field, transition.value); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Record.Path == "" {
		errs = append(errs, errors.New("record.path is required"))
	}
	compressions := []string{"none", "lz4", "zstd"}
	if !slices.Contains(compressions, c.Record.Compression) {
		errs = append(errs, fmt.Errorf("record.compression must be one of: %v", compressions))
	}

	return errors.Join(errs...)
}

// TimeLocation resolves Location. Empty and "Local" mean time.Local.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	return location, nil
}

// DriverSettings is DriverConfig with every field parsed.
type DriverSettings struct {
	Interval      time.Duration
	SettleDelay   time.Duration
	AlignToSecond bool
	Easing        dial.Easing
}

// DriverSettings parses the driver section.
func (c *Config) DriverSettings() (DriverSettings, error) {
	interval, intervalErr := positiveDuration("driver.interval", c.Driver.Interval)
	settle, settleErr := positiveDuration("driver.settle_delay", c.Driver.SettleDelay)
	easing, easingErr := dial.ParseEasing(c.Driver.SecondHand)
	if easingErr != nil {
		easingErr = fmt.Errorf("driver.second_hand: %w", easingErr)
	}
	if err := errors.Join(intervalErr, settleErr, easingErr); err != nil {
		return DriverSettings{}, err
	}
	return DriverSettings{
		Interval:      interval,
		SettleDelay:   settle,
		AlignToSecond: c.Driver.AlignToSecond,
		Easing:        easing,
	}, nil
}

// Transitions parses the face transition lengths, indexed by
// dial.Hand.
func (c *Config) Transitions() ([len(dial.Hands)]time.Duration, error) {
	var durations [len(dial.Hands)]time.Duration
	values := [len(dial.Hands)]string{
		dial.Hour:   c.Face.Transition.Hour,
		dial.Minute: c.Face.Transition.Minute,
		dial.Second: c.Face.Transition.Second,
	}
	var errs []error
	for _, hand := range dial.Hands {
		duration, err := nonNegativeDuration("face.transition."+hand.String(), values[hand])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		durations[hand] = duration
	}
	return durations, errors.Join(errs...)
}

func positiveDuration(field, value string) (time.Duration, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", field, value)
	}
	return duration, nil
}

func nonNegativeDuration(field, value string) (time.Duration, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", field, value)
	}
	return duration, nil
}

// EnsureRecordDirectory creates the directory that will hold the
// recording.
func (c *Config) EnsureRecordDirectory() error {
	directory := filepath.Dir(c.Record.Path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", directory, err)
	}
	return nil
}
