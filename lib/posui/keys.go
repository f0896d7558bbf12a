// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the admin console.
type KeyMap struct {
	// List navigation.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Menu bar: cycle through the modules the role may see.
	MenuNext     key.Binding
	MenuPrevious key.Binding

	// Screen actions. Whether each is honored depends on the active
	// module's permission flags.
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Print  key.Binding

	// Filter.
	FilterActivate key.Binding
	FilterClear    key.Binding

	// Forms and dialogs.
	Confirm key.Binding
	Cancel  key.Binding
	Toggle  key.Binding // Flag toggles on the role matrix, field cycling.

	// Session.
	SwitchCompany key.Binding
	Logout        key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	// Tab only: left/right belong to the screens (role grid columns,
	// master data tabs).
	MenuNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next module"),
	),
	MenuPrevious: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous module"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Print: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "print preview"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "toggle"),
	),
	SwitchCompany: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "switch company"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
