// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faceui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/clockface/lib/clock"
	"github.com/bureau-foundation/clockface/lib/dial"
	"github.com/bureau-foundation/clockface/lib/tui"
)

// Controller is the part of the driver the model drives from keys.
type Controller interface {
	Resync()
}

// frameMsg asks for another animation frame.
type frameMsg struct{}

// Options configures a Model. Zero fields take defaults.
type Options struct {
	// Location is the zone of the digital readout. Nil means the
	// clock's own.
	Location *time.Location

	Theme tui.Theme
	Keys  KeyMap

	// HideSeconds starts with the second hand hidden.
	HideSeconds bool

	// HideReadout drops the digital time, for replays where the
	// clock's time is not the time being shown.
	HideReadout bool

	// Curve and Durations shape the hand transitions. Nil curve means
	// tui.StationCurve; nil durations mean tui.DefaultDurations. All-zero
	// durations turn motion off.
	Curve     tui.Curve
	Durations *[len(dial.Hands)]time.Duration
}

// Model is the bubbletea model of the terminal clock.
type Model struct {
	clock      clock.Clock
	controller Controller
	location   *time.Location
	theme      tui.Theme
	keys       KeyMap

	motion      *tui.Motion
	showSeconds bool
	showReadout bool

	// frameScheduled is true while a frameMsg tick is outstanding,
	// so bursts of hand messages do not stack up redraw timers.
	frameScheduled bool

	width  int
	height int
}

// NewModel returns a model reading display time from source. The
// controller may be nil, in which case the resync key does nothing.
func NewModel(source clock.Clock, controller Controller, options Options) Model {
	if options.Theme == (tui.Theme{}) {
		options.Theme = tui.DefaultTheme
	}
	if len(options.Keys.Quit.Keys()) == 0 {
		options.Keys = DefaultKeyMap
	}
	if options.Curve == nil {
		options.Curve = tui.StationCurve
	}
	durations := tui.DefaultDurations
	if options.Durations != nil {
		durations = *options.Durations
	}
	return Model{
		clock:       source,
		controller:  controller,
		location:    options.Location,
		theme:       options.Theme,
		keys:        options.Keys,
		motion:      tui.NewMotion(options.Curve, durations),
		showSeconds: !options.HideSeconds,
		showReadout: !options.HideReadout,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return tea.SetWindowTitle("clockface")
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case HandMsg:
		model.motion.Retarget(message.Hand, message.Angle, model.clock.Now())
		return model.scheduleFrame()

	case AnimationMsg:
		model.motion.SetAnimated(message.Enabled)
		return model, nil

	case frameMsg:
		model.frameScheduled = false
		return model.scheduleFrame()

	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.Resync):
			return model, model.resync()
		case key.Matches(message, model.keys.ToggleSeconds):
			model.showSeconds = !model.showSeconds
			return model, nil
		}
	}
	return model, nil
}

// resync asks the driver to snap again. It runs as a command, off the
// event loop, because the driver sends its reinitialize tick back
// through the program while holding its own lock.
func (model Model) resync() tea.Cmd {
	if model.controller == nil {
		return nil
	}
	controller := model.controller
	return func() tea.Msg {
		controller.Resync()
		return nil
	}
}

// scheduleFrame arms the next redraw while any hand is in motion.
func (model Model) scheduleFrame() (tea.Model, tea.Cmd) {
	if model.frameScheduled || !model.motion.Moving(model.clock.Now()) {
		return model, nil
	}
	model.frameScheduled = true
	return model, tea.Tick(tui.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// ShowSeconds reports whether the second hand is drawn.
func (model Model) ShowSeconds() bool { return model.showSeconds }

// Motion exposes the hand interpolator, for inspection.
func (model Model) Motion() *tui.Motion { return model.motion }

// radius picks the largest face that leaves room for the help line.
func (model Model) radius() int {
	rows := model.height - 2
	return max(MinimumRadius, min((rows-1)/2, (model.width-1)/4))
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 || model.height == 0 {
		return ""
	}
	now := model.clock.Now()

	canvas := Draw(model.radius(), model.motion.Angles(now), model.showSeconds)
	face := Colorize(canvas, model.theme, nil)

	if model.showReadout {
		readout := model.readout(now)
		readoutStyle := lipgloss.NewStyle().Foreground(model.theme.StatusText)
		face = tui.SpliceOverlay(face,
			[]string{readoutStyle.Render(readout)},
			tui.CenterColumn(readout, canvas.Width),
			canvas.Radius+canvas.Radius/2)
	}

	block := face + "\n\n" + model.renderHelp()
	return tui.Center(block, model.width, model.height)
}

// readout is the digital time shown inside the dial.
func (model Model) readout(now time.Time) string {
	if model.location != nil {
		now = now.In(model.location)
	}
	if model.showSeconds {
		return now.Format("15:04:05")
	}
	return now.Format("15:04")
}

func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	var parts []string
	for _, binding := range model.keys.bindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return style.Render(strings.Join(parts, "  "))
}
