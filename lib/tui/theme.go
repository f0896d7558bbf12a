// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/poskit/poskit/lib/notify"
)

// Theme defines the color palette for the admin console. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and the semantic categories that recur across screens: notification
// levels for toasts, stock state for product rows, denied actions in
// the action bar.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Toast levels.
	InfoColor    lipgloss.Color
	SuccessColor lipgloss.Color
	WarningColor lipgloss.Color
	ErrorColor   lipgloss.Color

	// Action bar: actions the current role may not perform.
	DeniedText lipgloss.Color

	// Monetary columns. Cost uses its own color because it appears
	// only for roles with the cost flag and should read differently
	// from the sale price.
	PriceColor lipgloss.Color
	CostColor  lipgloss.Color

	// Stock levels on product rows.
	StockOK  lipgloss.Color
	StockLow lipgloss.Color
	StockOut lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Menu bar: the active module versus the rest.
	MenuActiveBackground lipgloss.Color
	MenuActiveForeground lipgloss.Color

	// Search and filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Modal overlays (company switcher, confirm dialogs).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// LevelColor returns the toast color for a notification level.
// Unknown levels render as normal text.
func (theme Theme) LevelColor(level notify.Level) lipgloss.Color {
	switch level {
	case notify.LevelInfo:
		return theme.InfoColor
	case notify.LevelSuccess:
		return theme.SuccessColor
	case notify.LevelWarning:
		return theme.WarningColor
	case notify.LevelError:
		return theme.ErrorColor
	default:
		return theme.NormalText
	}
}

// StockColor returns the color for an on-hand quantity given the
// product's reorder threshold. Zero threshold means "no threshold";
// only the out-of-stock state then applies.
func (theme Theme) StockColor(onHand, threshold int) lipgloss.Color {
	switch {
	case onHand <= 0:
		return theme.StockOut
	case threshold > 0 && onHand <= threshold:
		return theme.StockLow
	default:
		return theme.StockOK
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	InfoColor:    lipgloss.Color("75"),  // blue
	SuccessColor: lipgloss.Color("114"), // green
	WarningColor: lipgloss.Color("220"), // amber
	ErrorColor:   lipgloss.Color("196"), // red

	DeniedText: lipgloss.Color("240"),

	PriceColor: lipgloss.Color("255"),
	CostColor:  lipgloss.Color("179"), // muted gold, reads as "internal"

	StockOK:  lipgloss.Color("114"),
	StockLow: lipgloss.Color("220"),
	StockOut: lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	MenuActiveBackground: lipgloss.Color("24"), // deep blue
	MenuActiveForeground: lipgloss.Color("255"),

	SearchHighlightBackground: lipgloss.Color("58"), // dark amber

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
