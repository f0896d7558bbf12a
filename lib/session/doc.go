// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package session is the single source of truth for "who am I, and
// which tenant am I operating".
//
// A session holds the bearer token, the authenticated user, and (for
// system owners) the list of companies the user may operate. It is
// persisted to a well-known file so that a new process resumes where
// the last one stopped — the console equivalent of staying logged in
// across page reloads. Logout, or a 401 from any backend call,
// removes the file and clears every field at once.
//
// State transitions form a single linear sequence: login,
// selectCompany, and logout are the only mutations, each driven by
// one user action. There is no concurrent mutation model; the mutex
// exists only so the CLI commands and the console event loop can
// share one store.
package session
