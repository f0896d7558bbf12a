// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides small helpers shared across package tests:
// channel operations with timeout safety valves so a broken test fails
// instead of hanging.
package testutil
