// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridgeui

import (
	"strings"
	"testing"
)

func TestFuzzyMatchSubstring(t *testing.T) {
	result := fuzzyMatch("meeting notes for tuesday", []rune("notes"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if len(result.Positions) != 5 {
		t.Fatalf("positions = %v, want 5", result.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	if result := fuzzyMatch("WIFI PASSWORD", []rune("wifi"), nil); result.Score <= 0 {
		t.Fatalf("expected case-insensitive match, got score=%d", result.Score)
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := fuzzyMatch("grocery list", []rune("xyz"), nil)
	if result.Score != 0 || len(result.Positions) != 0 {
		t.Fatalf("expected no match, got %+v", result)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	if result := fuzzyMatch("anything", nil, nil); result.Score != 0 {
		t.Fatalf("expected zero score for empty pattern, got %d", result.Score)
	}
}

func TestFilterHistory(t *testing.T) {
	history := []string{"grape juice", "banana bread", "bandana", "apple"}

	all := filterHistory(history, "", nil)
	if len(all) != len(history) {
		t.Fatalf("empty query kept %d entries, want %d", len(all), len(history))
	}
	for index, match := range all {
		if match.Index != index || match.Text != history[index] {
			t.Fatalf("entry %d = %+v, want history order", index, match)
		}
	}

	filtered := filterHistory(history, "BAN", nil)
	if len(filtered) != 2 {
		t.Fatalf("filtered = %+v, want 2 entries", filtered)
	}
	for _, match := range filtered {
		if !strings.HasPrefix(match.Text, "ban") {
			t.Fatalf("unexpected match %q", match.Text)
		}
		if history[match.Index] != match.Text {
			t.Fatalf("Index %d does not point at %q", match.Index, match.Text)
		}
	}
}
