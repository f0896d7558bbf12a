// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"sync"
	"time"

	"github.com/poskit/poskit/lib/clock"
)

// MinimumDisplay is how long the busy indicator stays visible per
// burst of requests, even when every request completes sooner. This
// prevents a sub-100ms call from flashing the indicator.
const MinimumDisplay = 1200 * time.Millisecond

// loaderState tracks in-flight requests and publishes show/hide
// transitions. A "burst" starts with the first in-flight request and
// ends when the count returns to zero AND the minimum display window
// has elapsed since the burst began. A hide scheduled for the end of
// the window is cancelled by any new request.
type loaderState struct {
	mu           sync.Mutex
	clk          clock.Clock
	publish      func(active int)
	active       int
	burstStarted time.Time
	hideTimer    *clock.Timer
}

func newLoaderState(clk clock.Clock, publish func(active int)) *loaderState {
	return &loaderState{clk: clk, publish: publish}
}

func (l *loaderState) start() {
	l.mu.Lock()
	if l.hideTimer != nil {
		l.hideTimer.Stop()
		l.hideTimer = nil
	}

	l.active++
	first := l.active == 1
	if first {
		// Each 0→1 transition restarts the burst window, even when a
		// cancelled hide means the indicator never actually went away.
		l.burstStarted = l.clk.Now()
	}
	publish := l.publish
	l.mu.Unlock()

	if first && publish != nil {
		publish(1)
	}
}

func (l *loaderState) stop() {
	l.mu.Lock()
	if l.active > 0 {
		l.active--
	}
	if l.active > 0 {
		l.mu.Unlock()
		return
	}

	elapsed := l.clk.Now().Sub(l.burstStarted)
	remaining := MinimumDisplay - elapsed
	if remaining <= 0 {
		l.burstStarted = time.Time{}
		publish := l.publish
		l.mu.Unlock()
		if publish != nil {
			publish(0)
		}
		return
	}

	l.hideTimer = l.clk.AfterFunc(remaining, func() {
		l.mu.Lock()
		// A request may have started between the timer firing and
		// this callback taking the lock.
		if l.active > 0 {
			l.mu.Unlock()
			return
		}
		l.hideTimer = nil
		l.burstStarted = time.Time{}
		publish := l.publish
		l.mu.Unlock()
		if publish != nil {
			publish(0)
		}
	})
	l.mu.Unlock()
}
