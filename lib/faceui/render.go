// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faceui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/clockface/lib/dial"
	"github.com/bureau-foundation/clockface/lib/tui"
)

// layerStyles returns the style for every non-empty layer.
func layerStyles(theme tui.Theme, renderer *lipgloss.Renderer) map[Layer]lipgloss.Style {
	style := func(color lipgloss.Color) lipgloss.Style {
		return renderer.NewStyle().Foreground(color)
	}
	return map[Layer]lipgloss.Style{
		LayerMinuteDot:  style(theme.MinuteDot),
		LayerRim:        style(theme.Rim),
		LayerHourMark:   style(theme.HourMark),
		LayerHourHand:   style(theme.HandColor(dial.Hour)).Bold(true),
		LayerMinuteHand: style(theme.HandColor(dial.Minute)).Bold(true),
		LayerSecondHand: style(theme.HandColor(dial.Second)),
		LayerCap:        style(theme.Cap),
	}
}

// Colorize renders canvas with theme colors, one styled run per
// stretch of same-layer cells. A nil renderer uses lipgloss's default.
func Colorize(canvas *Canvas, theme tui.Theme, renderer *lipgloss.Renderer) string {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	styles := layerStyles(theme, renderer)

	lines := make([]string, canvas.Height)
	for row := range canvas.Height {
		var line strings.Builder
		var run strings.Builder
		runLayer := LayerEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := styles[runLayer]; ok {
				line.WriteString(style.Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}
		for column := range canvas.Width {
			cell := canvas.Cell(column, row)
			if cell.Layer != runLayer {
				flush()
				runLayer = cell.Layer
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

// PrintOptions configures Print.
type PrintOptions struct {
	Radius      int
	ShowSeconds bool
	Theme       tui.Theme

	// Profile is the color depth to render with. termenv.Ascii
	// prints the bare glyphs with no escape sequences.
	Profile termenv.Profile

	// Caption, when non-empty, is printed centered under the face.
	Caption string
}

// Print writes a single still frame of the face to w.
func Print(w io.Writer, angles dial.Angles, options PrintOptions) error {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(options.Profile))
	renderer.SetColorProfile(options.Profile)
	canvas := Draw(options.Radius, angles, options.ShowSeconds)

	var output strings.Builder
	output.WriteString(Colorize(canvas, options.Theme, renderer))
	output.WriteByte('\n')
	if options.Caption != "" {
		caption := renderer.NewStyle().Foreground(options.Theme.StatusText).Render(options.Caption)
		output.WriteString(strings.Repeat(" ", tui.CenterColumn(options.Caption, canvas.Width)))
		output.WriteString(caption)
		output.WriteByte('\n')
	}
	if _, err := io.WriteString(w, output.String()); err != nil {
		return fmt.Errorf("writing clock face: %w", err)
	}
	return nil
}
