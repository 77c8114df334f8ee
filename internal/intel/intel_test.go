// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intel

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/emazzini/visura-engine/pkg/types"
)

func TestExtractLeadership(t *testing.T) {
	var w types.WebIntelligence
	ExtractPage("Amministratore Delegato: Mario Rossi, dal 1990.", &w)
	assert.Equal(t, "Mario Rossi", w.CEOManagingDirector)

	// First hit sticks across pages.
	ExtractPage("CEO: Luigi Bianchi", &w)
	assert.Equal(t, "Mario Rossi", w.CEOManagingDirector)
}

func TestExtractLeadershipSkipsNavigationText(t *testing.T) {
	var w types.WebIntelligence
	ExtractPage("Presidente: Cookie Policy Info", &w)
	assert.Empty(t, w.CEOManagingDirector)
}

func TestExtractEmailsPromotesBusinessAddresses(t *testing.T) {
	var w types.WebIntelligence
	ExtractPage("Scrivi a mario.rossi@acme.it oppure info@acme.it per informazioni", &w)
	assert.Equal(t, []string{"info@acme.it", "mario.rossi@acme.it"}, w.InfoEmails)

	// Duplicates across pages collapse.
	ExtractPage("info@acme.it", &w)
	assert.Equal(t, []string{"info@acme.it", "mario.rossi@acme.it"}, w.InfoEmails)
}

func TestExtractPhones(t *testing.T) {
	var w types.WebIntelligence
	ExtractPage("Tel: +39 0471 123 456", &w)
	assert.Contains(t, w.PhoneNumbers, "+390471123456")

	var short types.WebIntelligence
	ExtractPage("interno 12345", &short)
	assert.Empty(t, short.PhoneNumbers)
}

func TestExtractAddresses(t *testing.T) {
	var w types.WebIntelligence
	ExtractPage("La nostra sede: Via  Roma 42, 39100 Bolzano", &w)
	assert.NotEmpty(t, w.Addresses)
	assert.Contains(t, w.Addresses[0], "Roma 42")
	// Internal whitespace is collapsed.
	assert.NotContains(t, w.Addresses[0], "  ")
}

func TestExtractAddressesTruncatesOnRuneBoundary(t *testing.T) {
	// Byte 250 of the capture lands inside a two-byte rune; the cut must
	// not leave invalid UTF-8 in the artifact.
	long := "Via A" + strings.Repeat("è", 150) + " 42"
	var w types.WebIntelligence
	ExtractPage(long, &w)

	assert.NotEmpty(t, w.Addresses)
	addr := w.Addresses[0]
	assert.LessOrEqual(t, len(addr), 250)
	assert.True(t, utf8.ValidString(addr))
}

func TestExtractReferences(t *testing.T) {
	var w types.WebIntelligence
	text := "Offriamo servizi di manutenzione per impianti industriali dal 1980. Il meteo oggi è bello. Ok."
	ExtractPage(text, &w)
	assert.Equal(t, []string{"Offriamo servizi di manutenzione per impianti industriali dal 1980"}, w.CompanyReferences)
}

func TestCleanupCaps(t *testing.T) {
	var w types.WebIntelligence
	var b strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "Frase numero %02d sui nostri servizi di impiantistica industriale. ", i)
	}
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "utente%02d@acme.it ", i)
	}
	ExtractPage(b.String(), &w)
	Cleanup(&w)

	assert.Len(t, w.InfoEmails, 8)
	assert.Len(t, w.CompanyReferences, 12)
	assert.NotNil(t, w.PhoneNumbers)
	assert.NotNil(t, w.Addresses)
}
