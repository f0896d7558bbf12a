// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeNowAdvance(t *testing.T) {
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	fake := Fake(start)

	if got := fake.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}
	fake.Advance(90 * time.Second)
	if got := fake.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Fatalf("Now() after Advance = %v", got)
	}
}

func TestFakeAfterFuncFiresInOrder(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	var order []int
	fake.AfterFunc(200*time.Millisecond, func() { order = append(order, 2) })
	fake.AfterFunc(100*time.Millisecond, func() { order = append(order, 1) })

	fake.Advance(time.Second)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("callbacks fired in order %v, want [1 2]", order)
	}
}

func TestFakeAfterFuncStop(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	fired := false
	timer := fake.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("Stop() on a pending timer returned false")
	}
	fake.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
	if timer.Stop() {
		t.Fatal("second Stop() returned true")
	}
}

func TestFakeAfterFuncReset(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	count := 0
	timer := fake.AfterFunc(time.Second, func() { count++ })

	fake.Advance(500 * time.Millisecond)
	if !timer.Reset(time.Second) {
		t.Fatal("Reset() on a pending timer returned false")
	}
	fake.Advance(600 * time.Millisecond)
	if count != 0 {
		t.Fatalf("timer fired %d times before the reset deadline", count)
	}
	fake.Advance(500 * time.Millisecond)
	if count != 1 {
		t.Fatalf("timer fired %d times, want 1", count)
	}
}

func TestFakeAfterImmediate(t *testing.T) {
	fake := Fake(time.Unix(0, 0))
	select {
	case <-fake.After(0):
	default:
		t.Fatal("After(0) did not deliver immediately")
	}
}
