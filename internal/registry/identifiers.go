// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"regexp"
	"strings"

	"github.com/emazzini/visura-engine/internal/pdftext"
)

// Registry documents repeat the subject's identifiers on every page, but
// later pages also carry identifiers of other parties (sureties,
// certifiers, related companies). Matching therefore reads the first
// page only.
const (
	// DefaultFirstPageMaxLines is the hard first-page cutoff when no page
	// marker is found.
	DefaultFirstPageMaxLines = 150

	// pageBreakSearchFrom is the line index after which page-two markers
	// are honored; earlier hits are header noise.
	pageBreakSearchFrom = 50
)

var pageTwoMarkers = []string{"pagina 2", "page 2", "pag. 2", "foglio 2"}

// taxCodePatterns capture 11-digit fiscal identifiers from lowercased
// first-page text.
var taxCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`codice fiscale[:\s]*([0-9]{11})`),
	regexp.MustCompile(`partita iva[:\s]*([0-9]{11})`),
	regexp.MustCompile(`c\.f\.[:\s]*([0-9]{11})`),
	regexp.MustCompile(`p\.iva[:\s]*([0-9]{11})`),
}

// namePatterns capture the declared business name after its label.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)denominazione[:\s]*([A-Z][^.\n]{5,80})`),
	regexp.MustCompile(`(?i)ragione sociale[:\s]*([A-Z][^.\n]{5,80})`),
	regexp.MustCompile(`(?i)impresa[:\s]*([A-Z][^.\n]{5,80})`),
}

// nameExclusions filter label fragments that the name patterns capture
// when the layout runs labels together.
var nameExclusions = []string{
	"del soggetto", "alla data", "denuncia", "progetto",
	"mediante", "organismo", "attestazione",
}

var nameSpaceRe = regexp.MustCompile(`\s+`)

// FirstPage returns the first-page slice of a document's text. An
// explicit page-break marker from extraction ends the page at any line;
// without one the scan falls back to the first page-two marker seen
// after line 50, or to maxLines (<=0 selects DefaultFirstPageMaxLines).
func FirstPage(text string, maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultFirstPageMaxLines
	}
	lines := strings.Split(text, "\n")
	var page []string
	for i, line := range lines {
		if strings.Contains(line, pdftext.PageBreakMarker) {
			break
		}
		if i > pageBreakSearchFrom && containsAny(strings.ToLower(line), pageTwoMarkers) {
			break
		}
		if i >= maxLines {
			break
		}
		page = append(page, line)
	}
	return strings.Join(page, "\n")
}

// ExtractIdentifiers pulls candidate company identifiers out of
// first-page text: tax codes first (most reliable), then cleaned
// uppercase business names. The returned order is the resolution
// precedence; duplicates are removed keeping the first occurrence.
func ExtractIdentifiers(firstPage string) []string {
	var identifiers []string

	lower := strings.ToLower(firstPage)
	for _, re := range taxCodePatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			identifiers = append(identifiers, m[1])
		}
	}

	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(firstPage, -1) {
			name := strings.ToUpper(nameSpaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " "))
			if len(name) < 5 || containsAny(strings.ToLower(name), nameExclusions) {
				continue
			}
			identifiers = append(identifiers, name)
		}
	}

	seen := make(map[string]bool, len(identifiers))
	unique := identifiers[:0]
	for _, id := range identifiers {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
