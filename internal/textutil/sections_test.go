// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSectionWindow(t *testing.T) {
	doc := strings.Join([]string{
		"line 0",
		"line 1",
		"line 2",
		"capitale sociale: 10.000 euro", // anchor, window 3
		"line 4",
		"line 5",
		"line 6",
		"line 7",
	}, "\n")

	got := ExtractSection(doc, FinancialProfile)
	want := strings.Join([]string{
		"line 0", "line 1", "line 2",
		"capitale sociale: 10.000 euro",
		"line 4", "line 5", "line 6",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestExtractSectionClampsAtEdges(t *testing.T) {
	doc := "fatturato 2023: 1M\nonly other line"
	got := ExtractSection(doc, FinancialProfile)
	assert.Equal(t, "fatturato 2023: 1M\nonly other line", got)
}

func TestExtractSectionMergesOverlaps(t *testing.T) {
	// Two anchors two lines apart with window 3: overlapping windows must
	// not duplicate the shared lines.
	doc := strings.Join([]string{
		"a", "fatturato x", "b", "ricavi y", "c",
	}, "\n")
	got := ExtractSection(doc, FinancialProfile)
	assert.Equal(t, "a\nfatturato x\nb\nricavi y\nc", got)
}

func TestExtractSectionCaseInsensitive(t *testing.T) {
	got := ExtractSection("CAPITALE SOCIALE EURO 50.000", FinancialProfile)
	assert.Equal(t, "CAPITALE SOCIALE EURO 50.000", got)
}

func TestExtractSectionNoAnchor(t *testing.T) {
	assert.Equal(t, "", ExtractSection("nothing relevant here", FinancialProfile))
}

func TestExtractSectionsCarriesFullText(t *testing.T) {
	doc := "attestazione soa n. 123\noggetto sociale: impianti"
	sections := ExtractSections(doc)

	assert.Equal(t, doc, sections["full_text"])
	assert.Contains(t, sections["certifications"], "attestazione soa")
	assert.Contains(t, sections["business_activities"], "oggetto sociale")
	for _, p := range Profiles {
		_, ok := sections[p.Name]
		assert.True(t, ok, "missing section %q", p.Name)
	}
}

func TestKeyTerms(t *testing.T) {
	got := KeyTerms("Impianti elettrici per la Gestione di reti")
	assert.Equal(t, []string{"impianti", "elettrici", "gestione", "reti"}, got)
}

func TestKeyTermsKeepsDuplicatesAndAccents(t *testing.T) {
	got := KeyTerms("qualità e qualità")
	assert.Equal(t, []string{"qualità", "qualità"}, got)
}
