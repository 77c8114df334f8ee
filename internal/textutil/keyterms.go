// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// stopwords are the Italian and English function words excluded from key
// term extraction.
var stopwords = map[string]bool{
	"di": true, "e": true, "il": true, "la": true, "per": true,
	"con": true, "su": true, "in": true, "a": true, "da": true,
	"del": true, "della": true, "dei": true, "delle": true,
	"nel": true, "nella": true, "nei": true, "nelle": true,
	"and": true, "or": true, "the": true, "of": true, "to": true,
	"for": true, "with": true, "on": true, "at": true,
}

// Unicode word class so accented Italian terms stay whole.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// KeyTerms returns the lowercased words of text longer than three
// characters, minus stopwords, in order of appearance. Duplicates are
// kept; callers that score term frequency rely on that.
func KeyTerms(text string) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > 3 && !stopwords[w] {
			terms = append(terms, w)
		}
	}
	return terms
}
