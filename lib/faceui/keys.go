// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faceui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal clock.
type KeyMap struct {
	Resync        key.Binding // Snap the hands to the wall clock again.
	ToggleSeconds key.Binding
	Quit          key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Resync: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resync"),
	),
	ToggleSeconds: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "seconds"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// bindings returns the bindings shown in the help line, in order.
func (keys KeyMap) bindings() []key.Binding {
	return []key.Binding{keys.Resync, keys.ToggleSeconds, keys.Quit}
}
