// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// Theme is the palette of the terminal clock. All colors are
// lipgloss ANSI 256-color codes so the face looks the same in tmux
// and in a bare terminal.
type Theme struct {
	// Face.
	Rim       lipgloss.Color
	HourMark  lipgloss.Color
	MinuteDot lipgloss.Color
	Cap       lipgloss.Color

	// Hands, indexed by dial.Hand.
	Hands [len(dial.Hands)]lipgloss.Color

	// Chrome below the face.
	StatusText lipgloss.Color
	HelpText   lipgloss.Color
}

// HandColor returns the color of hand. Unknown hands use StatusText.
func (theme Theme) HandColor(hand dial.Hand) lipgloss.Color {
	if !hand.Valid() {
		return theme.StatusText
	}
	return theme.Hands[hand]
}

// DefaultTheme matches the SVG face on a dark terminal: grey rim,
// white hour and minute hands, orange second hand.
var DefaultTheme = Theme{
	Rim:       lipgloss.Color("248"),
	HourMark:  lipgloss.Color("252"),
	MinuteDot: lipgloss.Color("240"),
	Cap:       lipgloss.Color("255"),

	Hands: [len(dial.Hands)]lipgloss.Color{
		dial.Hour:   lipgloss.Color("255"),
		dial.Minute: lipgloss.Color("252"),
		dial.Second: lipgloss.Color("208"),
	},

	StatusText: lipgloss.Color("252"),
	HelpText:   lipgloss.Color("241"),
}
