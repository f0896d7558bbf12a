// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the poskit command-line interface: the
// command framework (dispatch, flags, help, typo suggestions) and the
// individual commands.
//
// The commands share one wiring path: resolve the config file, build
// the api client, and load the persisted session. The console command
// additionally builds the permission store, the notification bus, and
// the bubbletea program; the non-interactive commands (login, logout,
// whoami, company) operate on the session file directly so scripts can
// authenticate without a terminal UI.
package cli
