// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emazzini/visura-engine/internal/pdftext"
)

func TestFirstPageStopsAtPageMarker(t *testing.T) {
	var lines []string
	for i := 0; i < 60; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	lines = append(lines, "Pagina 2 di 14")
	lines = append(lines, "second page content")

	page := FirstPage(strings.Join(lines, "\n"), 0)
	assert.NotContains(t, page, "Pagina 2")
	assert.NotContains(t, page, "second page content")
	assert.Contains(t, page, "line 59")
}

func TestFirstPageStopsAtExplicitBreakMarker(t *testing.T) {
	// Extracted short first pages end at the explicit marker even before
	// line 50; later pages carry other parties' identifiers.
	text := strings.Join([]string{
		"CAMERA DI COMMERCIO DI BOLZANO",
		"Denominazione: ACME COSTRUZIONI SRL",
		"Codice fiscale: 01234567890",
		pdftext.PageBreakMarker,
		"Garante: FIDEIUSSIONI RAPIDE SPA",
		"codice fiscale: 99999999999",
	}, "\n")

	page := FirstPage(text, 0)
	assert.NotContains(t, page, "99999999999")

	ids := ExtractIdentifiers(page)
	assert.Equal(t, []string{"01234567890", "ACME COSTRUZIONI SRL"}, ids)
}

func TestFirstPageIgnoresEarlyMarker(t *testing.T) {
	// A "pag. 2" in the first 50 lines is header noise, not a page break.
	text := "pag. 2 header artifact\nreal content\n"
	page := FirstPage(text, 0)
	assert.Contains(t, page, "real content")
}

func TestFirstPageHardLimit(t *testing.T) {
	var lines []string
	for i := 0; i < 300; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	page := FirstPage(strings.Join(lines, "\n"), 0)
	assert.Contains(t, page, "line 149")
	assert.NotContains(t, page, "line 150")

	page = FirstPage(strings.Join(lines, "\n"), 200)
	assert.Contains(t, page, "line 199")
	assert.NotContains(t, page, "line 200")
}

func TestExtractIdentifiers(t *testing.T) {
	text := strings.Join([]string{
		"CAMERA DI COMMERCIO DI BOLZANO",
		"DENOMINAZIONE: ACME  COSTRUZIONI SRL",
		"Codice Fiscale: 01234567890",
		"Partita IVA: 01234567890",
	}, "\n")

	ids := ExtractIdentifiers(text)
	// Tax codes precede names; duplicates collapse.
	assert.Equal(t, []string{"01234567890", "ACME COSTRUZIONI SRL"}, ids)
}

func TestExtractIdentifiersFiltersLabelFragments(t *testing.T) {
	text := "DENOMINAZIONE: DEL SOGGETTO RICHIEDENTE\nimpresa: A1\n"
	assert.Empty(t, ExtractIdentifiers(text))
}

func TestExtractIdentifiersAbbreviatedLabels(t *testing.T) {
	text := "C.F.: 11122233344 P.IVA: 55566677788"
	ids := ExtractIdentifiers(text)
	assert.Equal(t, []string{"11122233344", "55566677788"}, ids)
}
