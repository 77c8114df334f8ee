// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"strings"
)

// focusPatterns capture an Italian declared-focus phrase and the English
// prefix it renders under. First pattern with a hit wins.
var focusPatterns = []struct {
	re     *regexp.Regexp
	prefix string
}{
	{regexp.MustCompile(`(?i)specializzat[oi]\s+in\s+([^.]{10,50})`), "Specialized in"},
	{regexp.MustCompile(`(?i)leader\s+nel\s+([^.]{10,50})`), "Leader in"},
	{regexp.MustCompile(`(?i)esperti?\s+di\s+([^.]{10,50})`), "Expert in"},
	{regexp.MustCompile(`(?i)focus\s+su\s+([^.]{10,50})`), "Focus on"},
}

// DetectBusinessFocus returns a rendered focus sentence like
// "Specialized in impianti fotovoltaici", or "" when none declared.
func DetectBusinessFocus(content string) string {
	for _, p := range focusPatterns {
		if m := p.re.FindStringSubmatch(content); m != nil {
			return p.prefix + " " + strings.TrimSpace(m[1])
		}
	}
	return ""
}
