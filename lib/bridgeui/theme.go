// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridgeui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for the bridge UI. All colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	AccentForeground lipgloss.Color // Join URL and focused pane titles.
	BorderColor      lipgloss.Color
	FocusBorderColor lipgloss.Color
	HelpText         lipgloss.Color

	NoticeForeground lipgloss.Color // Success notices ("Copied").
	ErrorForeground  lipgloss.Color

	MatchForeground lipgloss.Color // Fuzzy filter matched characters.
}

// DefaultTheme targets dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	AccentForeground: lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),
	FocusBorderColor: lipgloss.Color("75"),
	HelpText:         lipgloss.Color("241"),

	NoticeForeground: lipgloss.Color("114"),
	ErrorForeground:  lipgloss.Color("196"),

	MatchForeground: lipgloss.Color("220"),
}
