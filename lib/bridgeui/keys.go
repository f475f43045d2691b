// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridgeui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the bridge UI.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	FocusToggle key.Binding // Cycle between history and editor.
	Blur        key.Binding // Leave the editor without sending.

	Push  key.Binding // Publish the editor text on /content.
	Paste key.Binding // Load the clipboard into the editor.

	CopyLatest   key.Binding
	CopySelected key.Binding

	FilterActivate key.Binding
	FilterClear    key.Binding

	ToggleLogs key.Binding

	// Quit is only honored outside the editor and filter, where 'q'
	// is text. ctrl+c quits everywhere.
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Blur: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "leave editor"),
	),
	Push: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "send to phone"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v", "ctrl+p"),
		key.WithHelp("C-v", "paste clipboard"),
	),
	CopyLatest: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy latest"),
	),
	CopySelected: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "copy selected"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	ToggleLogs: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
