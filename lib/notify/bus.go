// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify decouples the emitter of a user-facing message from
// its presentation. Any component emits a leveled notification; a
// single listener (the console status area, or the CLI's stderr
// printer) renders it. Delivery is synchronous and in-process: there
// is no persistence and no queueing across runs.
package notify

import "sync"

// Level classifies a notification for presentation.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one user-facing message.
type Notification struct {
	Level Level
	// Title is the short headline (e.g. "Login failed").
	Title string
	// Detail is optional supporting text, typically the backend's
	// message verbatim.
	Detail string
}

// Bus fans notifications out to subscribers. Subscribers are invoked
// synchronously, in subscription order, on the emitting goroutine.
// The zero value is ready to use.
type Bus struct {
	mu          sync.Mutex
	subscribers []func(Notification)
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers a listener for every subsequent Emit. There is
// no unsubscribe: listeners live as long as the process.
func (b *Bus) Subscribe(fn func(Notification)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Emit delivers n to every subscriber. Zero subscribers is fine: the
// notification is simply dropped.
func (b *Bus) Emit(n Notification) {
	b.mu.Lock()
	subscribers := make([]func(Notification), len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subscribers {
		fn(n)
	}
}

// Info emits an informational notification.
func (b *Bus) Info(title, detail string) {
	b.Emit(Notification{Level: LevelInfo, Title: title, Detail: detail})
}

// Success emits a success notification.
func (b *Bus) Success(title, detail string) {
	b.Emit(Notification{Level: LevelSuccess, Title: title, Detail: detail})
}

// Warning emits a warning notification.
func (b *Bus) Warning(title, detail string) {
	b.Emit(Notification{Level: LevelWarning, Title: title, Detail: detail})
}

// Error emits an error notification.
func (b *Bus) Error(title, detail string) {
	b.Emit(Notification{Level: LevelError, Title: title, Detail: detail})
}
