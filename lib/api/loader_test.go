// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"testing"
	"time"

	"github.com/poskit/poskit/lib/clock"
)

// recorder collects every published loader transition.
type recorder struct {
	transitions []int
}

func (r *recorder) publish(active int) { r.transitions = append(r.transitions, active) }

func TestLoaderShowsOnFirstRequest(t *testing.T) {
	fake := clock.Fake(time.Unix(0, 0))
	rec := &recorder{}
	loader := newLoaderState(fake, rec.publish)

	loader.start()
	if len(rec.transitions) != 1 || rec.transitions[0] != 1 {
		t.Fatalf("transitions = %v, want [1]", rec.transitions)
	}

	// A second overlapping request publishes nothing new.
	loader.start()
	loader.stop()
	if len(rec.transitions) != 1 {
		t.Fatalf("transitions = %v, want still [1]", rec.transitions)
	}
}

// A 100ms call keeps the indicator visible for the full minimum
// display window measured from first appearance.
func TestLoaderEnforcesMinimumDisplay(t *testing.T) {
	fake := clock.Fake(time.Unix(0, 0))
	rec := &recorder{}
	loader := newLoaderState(fake, rec.publish)

	loader.start()
	fake.Advance(100 * time.Millisecond)
	loader.stop()

	// Request done, but the window has 1100ms to run.
	if len(rec.transitions) != 1 {
		t.Fatalf("hide published early: %v", rec.transitions)
	}
	fake.Advance(1099 * time.Millisecond)
	if len(rec.transitions) != 1 {
		t.Fatalf("hide published before the window closed: %v", rec.transitions)
	}
	fake.Advance(1 * time.Millisecond)
	if len(rec.transitions) != 2 || rec.transitions[1] != 0 {
		t.Fatalf("transitions = %v, want [1 0]", rec.transitions)
	}
}

func TestLoaderHidesImmediatelyAfterLongRequest(t *testing.T) {
	fake := clock.Fake(time.Unix(0, 0))
	rec := &recorder{}
	loader := newLoaderState(fake, rec.publish)

	loader.start()
	fake.Advance(2 * time.Second)
	loader.stop()

	if len(rec.transitions) != 2 || rec.transitions[1] != 0 {
		t.Fatalf("transitions = %v, want [1 0]", rec.transitions)
	}
}

// A new request cancels the pending hide and restarts the burst
// window.
func TestLoaderNewRequestCancelsScheduledHide(t *testing.T) {
	fake := clock.Fake(time.Unix(0, 0))
	rec := &recorder{}
	loader := newLoaderState(fake, rec.publish)

	loader.start()
	fake.Advance(100 * time.Millisecond)
	loader.stop()

	// Hide is pending. A new request arrives before it fires.
	fake.Advance(500 * time.Millisecond)
	loader.start()

	// The old hide deadline passes without a hide.
	fake.Advance(700 * time.Millisecond)
	for _, transition := range rec.transitions {
		if transition == 0 {
			t.Fatalf("hide fired despite the new request: %v", rec.transitions)
		}
	}

	loader.stop()
	fake.Advance(MinimumDisplay)
	last := rec.transitions[len(rec.transitions)-1]
	if last != 0 {
		t.Fatalf("transitions = %v, want trailing 0", rec.transitions)
	}
}
