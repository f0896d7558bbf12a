// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
)

func TestSpliceOverlayReplacesRegion(t *testing.T) {
	view := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")

	result := SpliceOverlay(view, []string{"XXXX"}, 3, 1)
	lines := strings.Split(result, "\n")

	if lines[0] != "aaaaaaaaaa" || lines[2] != "cccccccccc" {
		t.Fatalf("overlay touched other lines: %q", result)
	}
	if !strings.Contains(lines[1], "bbb") || !strings.Contains(lines[1], "XXXX") {
		t.Fatalf("line 1 = %q, want prefix kept and overlay spliced", lines[1])
	}
}

func TestSpliceOverlayEmptyIsIdentity(t *testing.T) {
	view := "hello\nworld"
	if result := SpliceOverlay(view, nil, 0, 0); result != view {
		t.Fatalf("empty overlay changed the view: %q", result)
	}
}

func TestSpliceOverlayOutOfRangeLinesSkipped(t *testing.T) {
	view := "only line"
	result := SpliceOverlay(view, []string{"AA", "BB", "CC"}, 0, -1)
	lines := strings.Split(result, "\n")
	if len(lines) != 1 {
		t.Fatalf("overlay grew the view: %q", result)
	}
	if !strings.Contains(lines[0], "BB") {
		t.Fatalf("in-range overlay line missing: %q", result)
	}
}

func TestCenterAnchor(t *testing.T) {
	x, y := CenterAnchor(80, 24, 40, 10)
	if x != 20 || y != 7 {
		t.Fatalf("anchor = (%d, %d), want (20, 7)", x, y)
	}

	x, y = CenterAnchor(10, 5, 40, 10)
	if x != 0 || y != 0 {
		t.Fatalf("anchor = (%d, %d), want clamped to (0, 0)", x, y)
	}
}
