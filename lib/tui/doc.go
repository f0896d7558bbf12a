// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the presentation helpers shared by the admin
// console: the color theme, ANSI-aware overlay splicing for modals and
// toasts, and the fuzzy matcher behind list filtering. It knows
// nothing about sessions or permissions; lib/posui composes these into
// screens.
package tui
