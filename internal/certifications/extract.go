// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package certifications

import (
	"strings"

	"github.com/emazzini/visura-engine/internal/textutil"
	"github.com/emazzini/visura-engine/pkg/types"
)

// Extract runs every bucket over the document text and returns the
// populated set. A document with no trigger lines yields empty buckets,
// never an error. Each bucket's entries keep first-occurrence order
// with exact duplicates removed.
func Extract(text string) *types.CertificationSet {
	lines := strings.Split(text, "\n")

	set := &types.CertificationSet{}
	for _, b := range buckets {
		entries := harvest(lines, b)
		switch b.name {
		case "soa":
			set.SOAAttestations = entries
		case "quality":
			set.QualityCertifications = entries
		case "environmental":
			set.EnvironmentalCertifications = entries
		case "safety":
			set.SafetyCertifications = entries
		case "environmental_registration":
			set.EnvironmentalRegistrations = entries
		case "technical_authorization":
			set.TechnicalAuthorizations = entries
		}
	}
	// No direct pattern feeds the catch-all bucket; it exists for the
	// model path and external artifacts to merge into.
	set.OtherCertifications = []string{}
	return set
}

// harvest scans for trigger lines, joins the context window around each,
// and applies the bucket's patterns to every window.
func harvest(lines []string, b bucket) []string {
	var found []string
	for i, line := range lines {
		if !triggered(strings.ToLower(line), b.triggers) {
			continue
		}
		start := i - b.before
		if start < 0 {
			start = 0
		}
		end := i + b.after
		if end > len(lines) {
			end = len(lines)
		}
		window := strings.Join(lines[start:end], "\n")

		for _, re := range b.patterns {
			for _, m := range re.FindAllStringSubmatch(window, -1) {
				snippet := strings.TrimSpace(capture(m))
				if len(snippet) >= b.minLen {
					found = append(found, snippet)
				}
			}
		}
	}
	return dedupNonEmpty(found)
}

// triggered reports whether every term of any one trigger group appears
// in the lowercased line.
func triggered(lower string, groups [][]string) bool {
	for _, group := range groups {
		all := true
		for _, term := range group {
			if !strings.Contains(lower, term) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// capture returns the first capture group when the pattern has one,
// otherwise the whole match.
func capture(m []string) string {
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

// dedupNonEmpty never returns nil so the buckets serialize as [].
func dedupNonEmpty(entries []string) []string {
	out := textutil.Dedup(entries)
	if out == nil {
		out = []string{}
	}
	return out
}
