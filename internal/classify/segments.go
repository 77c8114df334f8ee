// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "strings"

// segmentLabels maps a trigger keyword to its market segment label, in
// emission order.
var segmentLabels = []struct {
	keyword string
	label   string
}{
	{"banking", "Banking & Finance"},
	{"healthcare", "Healthcare"},
	{"manufacturing", "Manufacturing"},
	{"retail", "Retail & E-commerce"},
	{"education", "Education"},
	{"government", "Government & Public Sector"},
	{"automotive", "Automotive"},
	{"energy", "Energy & Utilities"},
	{"logistics", "Logistics & Transportation"},
	{"real estate", "Real Estate"},
	{"insurance", "Insurance"},
	{"telecommunications", "Telecommunications"},
	{"media", "Media & Entertainment"},
	{"food", "Food & Beverage"},
	{"pharma", "Pharmaceutical"},
}

// DetectMarketSegments returns the labels whose trigger keyword appears
// in lowercased content, capped at eight.
func DetectMarketSegments(lower string) []string {
	var found []string
	for _, s := range segmentLabels {
		if strings.Contains(lower, s.keyword) && !containsString(found, s.label) {
			found = append(found, s.label)
		}
	}
	if len(found) > 8 {
		found = found[:8]
	}
	return found
}
