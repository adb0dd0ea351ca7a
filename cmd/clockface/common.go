// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clockface/cmd/clockface/cli"
	"github.com/bureau-foundation/clockface/lib/config"
	"github.com/bureau-foundation/clockface/lib/dial"
	"github.com/bureau-foundation/clockface/lib/driver"
	"github.com/bureau-foundation/clockface/lib/svgface"
)

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	configPath string
	logOutput  string
	easing     string
	location   string
	verbose    bool
}

func (flags *commonFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.configPath, "config", "", "configuration file (YAML or JSONC)")
	flagSet.StringVar(&flags.logOutput, "log-output", "", "also write JSON log records to this file")
	flagSet.StringVar(&flags.easing, "easing", "", "second hand motion: step or cosine (overrides driver.second_hand)")
	flagSet.StringVar(&flags.location, "location", "", "IANA time zone to show (overrides location)")
	flagSet.BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")
	flagSet.BoolP("help", "h", false, "show help")
}

// parseFlags parses args into flagSet. It returns done=true when help
// was printed and the subcommand should return without doing anything.
func parseFlags(env environment, flagSet *pflag.FlagSet, args []string, usage string) (done bool, err error) {
	flagSet.SetOutput(env.stderr)
	flagSet.Usage = func() {}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(env, flagSet, usage)
			return true, nil
		}
		return false, cli.Validation("%w", err).
			WithHint(fmt.Sprintf("Run 'clockface %s --help' for usage.", flagSet.Name()))
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(env, flagSet, usage)
		return true, nil
	}
	return false, nil
}

func printHelp(env environment, flagSet *pflag.FlagSet, usage string) {
	fmt.Fprint(env.stderr, usage)
	fmt.Fprintf(env.stderr, "\nFlags:\n")
	flagSet.PrintDefaults()
}

// session is the resolved configuration shared by every subcommand.
type session struct {
	config      *config.Config
	settings    config.DriverSettings
	location    *time.Location
	transitions [len(dial.Hands)]time.Duration
	logger      *slog.Logger
	closeLog    func()
}

// load resolves the configuration and builds the logger. Interactive
// subcommands own the terminal, so their log records go only to
// --log-output.
func (flags *commonFlags) load(env environment, interactive bool) (*session, error) {
	cfg, err := flags.loadConfig(env)
	if err != nil {
		return nil, err
	}
	if flags.easing != "" {
		cfg.Driver.SecondHand = flags.easing
	}
	if flags.location != "" {
		cfg.Location = flags.location
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration:\n%w", err).
			WithHint("Fix the fields named above in the config file or the matching flags.")
	}

	// Validate has already accepted every field parsed below.
	settings, err := cfg.DriverSettings()
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	location, err := cfg.TimeLocation()
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	transitions, err := cfg.Transitions()
	if err != nil {
		return nil, cli.Internal("%w", err)
	}

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	var handlers cli.FanoutHandler
	if !interactive {
		handlers = append(handlers, cli.NewCommandLogger(env.stderr, level).Handler())
	}
	closeLog := func() {}
	if flags.logOutput != "" {
		fileHandler, cleanup, err := cli.OpenFileLogHandler(flags.logOutput)
		if err != nil {
			return nil, cli.Validation("opening log file: %w", err)
		}
		handlers = append(handlers, fileHandler)
		closeLog = cleanup
	}
	var logger *slog.Logger
	switch len(handlers) {
	case 0:
		logger = slog.New(slog.DiscardHandler)
	case 1:
		logger = slog.New(handlers[0])
	default:
		logger = slog.New(handlers)
	}

	return &session{
		config:      cfg,
		settings:    settings,
		location:    location,
		transitions: transitions,
		logger:      logger,
		closeLog:    closeLog,
	}, nil
}

// loadConfig reads --config, then the file named by CLOCKFACE_CONFIG,
// then falls back to the defaults.
func (flags *commonFlags) loadConfig(env environment) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = env.getenv(config.EnvironmentVariable)
	}
	if path == "" {
		cfg := config.Default()
		cfg.ExpandVariables()
		return cfg, nil
	}
	cfg, err := config.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("config file %s does not exist", path).
			WithHint("Pass --config with an existing file, or unset " + config.EnvironmentVariable + " to use the defaults.")
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	return cfg, nil
}

func (session *session) driverOptions() driver.Options {
	return driver.Options{
		Interval:      session.settings.Interval,
		SettleDelay:   session.settings.SettleDelay,
		AlignToSecond: session.settings.AlignToSecond,
		Easing:        session.settings.Easing,
		Location:      session.location,
		Logger:        session.logger.With("component", "driver"),
	}
}

// face builds the SVG face from the face section.
func (session *session) face() (*svgface.Face, error) {
	style := svgface.DefaultStyle
	colors := session.config.Face
	style.HourStroke = colors.HandColors.Hour
	style.MinuteStroke = colors.HandColors.Minute
	style.SecondStroke = colors.HandColors.Second
	style.DialFill = colors.DialColor
	style.RimFill = colors.RimColor
	style.HourTransition = session.transitions[dial.Hour]
	style.MinuteTransition = session.transitions[dial.Minute]
	style.SecondTransition = session.transitions[dial.Second]

	face, err := svgface.New(style)
	if err != nil {
		return nil, cli.Validation("face: %w", err).
			WithHint("Colors in the face section must be CSS color literals such as white, #e00, or rgb(255, 140, 0).")
	}
	return face, nil
}
