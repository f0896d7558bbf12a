// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the single point of contact with the POS SaaS
// backend. It exposes one typed method per backend endpoint, attaches
// the current bearer token to every request, counts in-flight
// requests for the busy indicator, and funnels 401 responses into a
// single unauthorized hook that purges the session.
//
// The client mirrors the backend's wire format with its own request
// and response types so that screen code never touches raw JSON. All
// responses share the {code, message, ...data} envelope; the success
// predicate lives on Envelope, in one place, because the backend is
// not uniform about it (most endpoints answer 200, the master-save
// endpoints answer 0).
//
// Errors returned by client methods are transport-level only (network
// failure, non-2xx status, malformed body). A well-formed envelope
// with a non-success code is not an error here: callers branch on the
// envelope so they can surface the backend's message verbatim.
package api
