// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil provides the text cleaning and keyword-windowed
// section carving shared by the analysis stages.
// Implements: docs/ARCHITECTURE § Text Processing.
package textutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Keeps letters, digits, underscore, whitespace and the punctuation
	// that carries meaning in registry extracts (dates, codes, lists).
	// Letter classes are Unicode so accented Italian text survives.
	strayCharsRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:()\-/]`)
)

// Normalize flattens all whitespace runs to single spaces, drops stray
// symbols, and trims the ends. The result is a single line regardless of
// input layout; use NormalizeLines when line structure must survive.
func Normalize(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strayCharsRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// NormalizeLines applies the same character cleanup per line, collapsing
// horizontal whitespace inside each line but preserving the line breaks
// the windowed extractors rely on.
func NormalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = whitespaceRe.ReplaceAllString(line, " ")
		line = strayCharsRe.ReplaceAllString(line, "")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// Dedup removes exact duplicates from items, keeping the first
// occurrence of each and the original order. Blank entries are dropped.
func Dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
