// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package permission owns the menu-and-permission matrix for the
// current (user, tenant) pair and answers per-screen and per-action
// queries.
//
// The backend describes what a user may do inside a tenant as a list
// of modules, each with seven boolean flags: full, list, add, edit,
// delete, cost, print. "full" is a capability shortcut: it implies
// the other six at lookup time and is never pre-expanded in storage.
//
// Module identity is the module name. Routes and display labels are
// presentation data and may change without invalidating permissions.
package permission
