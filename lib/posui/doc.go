// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package posui is the admin console: a bubbletea program whose
// screens correspond to the backend's permission modules. The model
// is the single mutation site for the session and permission stores;
// backend calls run as tea.Cmd goroutines and re-enter the loop as
// typed messages carrying the company id they were dispatched for, so
// responses that arrive after a tenant switch are discarded instead of
// applied.
//
// Navigation goes through navigate(), which applies the gates in
// order: authenticated users never see the login screen, protected
// screens without a session bounce to login (remembering where the
// user wanted to go), and a system owner with no tenant selected is
// held on the company picker. Per-action permission checks happen at
// render time and again on dispatch; a denied dispatch produces a
// warning toast rather than an error, because the backend enforces
// the real boundary.
package posui
