// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridgeui

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initAlgo sync.Once

// FuzzyResult is the outcome of matching one text against a pattern.
// Score is zero when the text does not match.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch runs fzf's V2 algorithm case-insensitively. The pattern
// must already be lowercase. slab may be nil.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	initAlgo.Do(func() { algo.Init("default") })

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}
	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = append([]int(nil), *positions...)
		sort.Ints(matched.Positions)
	}
	return matched
}

// historyMatch is one history entry that survived the filter.
type historyMatch struct {
	// Index is the position in the consumer's history (0 is newest).
	Index     int
	Text      string
	Score     int
	Positions []int
}

// filterHistory returns the entries matching query, best score first
// and newest first among equal scores. An empty query keeps every
// entry in history order.
func filterHistory(history []string, query string, slab *util.Slab) []historyMatch {
	pattern := []rune(strings.ToLower(query))
	matches := make([]historyMatch, 0, len(history))
	for index, text := range history {
		if len(pattern) == 0 {
			matches = append(matches, historyMatch{Index: index, Text: text})
			continue
		}
		result := fuzzyMatch(text, pattern, slab)
		if result.Score == 0 {
			continue
		}
		matches = append(matches, historyMatch{
			Index:     index,
			Text:      text,
			Score:     result.Score,
			Positions: result.Positions,
		})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}
