// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf's scoring tables must be initialized once before FuzzyMatchV2
// can match anything; without this most patterns score zero.
func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching one pattern against one text:
// a relevance score (zero means no match) and the rune positions that
// matched, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's FuzzyMatchV2 algorithm against text. Matching
// is case-insensitive: the pattern is lowercased here and the
// algorithm folds the text. An empty pattern scores zero; callers
// treat that as "no filter" and keep every row.
//
// The slab is fzf's scratch allocation arena. Pass the same slab for a
// whole filter pass to avoid per-row allocations; nil is accepted and
// simply allocates per call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for index, r := range pattern {
		lowered[index] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = *positions
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}

// NewSlab returns a scratch arena sized for interactive list
// filtering, matching fzf's own defaults.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
