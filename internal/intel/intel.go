// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intel extracts contact and business details from company web
// page text. Everything here is pattern-based and tuned for Italian
// business sites; the caps in Cleanup keep noisy pages from flooding
// the output.
// Implements: docs/ARCHITECTURE § Website Intelligence.
package intel

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/emazzini/visura-engine/pkg/types"
)

// leadershipPatterns capture a person's name near an executive title.
// Case-insensitive: page text arrives in arbitrary casing.
var leadershipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:ceo|amministratore\s+delegato|direttore\s+generale|presidente|managing\s+director)[:\s]*([A-Z][a-zA-Z\s]+(?:[A-Z][a-zA-Z\s]*){1,3})`),
	regexp.MustCompile(`(?i)([A-Z][a-zA-Z]+\s+[A-Z][a-zA-Z]+)(?:\s*[-,]\s*(?:ceo|amministratore\s+delegato|direttore\s+generale|presidente))`),
	regexp.MustCompile(`(?i)(?:dott\.?\s*|ing\.?\s*|prof\.?\s*|dr\.?\s*)?([A-Z][a-zA-Z]+\s+[A-Z][a-zA-Z]+)(?:\s*[-,]\s*(?:ceo|amministratore\s+delegato|managing\s+director))`),
	regexp.MustCompile(`(?i)(?:fondatore|founder)[:\s]*(?:dott\.?\s*|ing\.?\s*|prof\.?\s*)?([A-Z][a-zA-Z]+\s+[A-Z][a-zA-Z]+)`),
	regexp.MustCompile(`(?i)(?:direttore\s+tecnico|cto|chief\s+technology\s+officer)[:\s]*(?:dott\.?\s*|ing\.?\s*)?([A-Z][a-zA-Z]+\s+[A-Z][a-zA-Z]+)`),
	regexp.MustCompile(`(?i)(?:responsabile|manager)[:\s]*(?:dott\.?\s*|ing\.?\s*)?([A-Z][a-zA-Z]+\s+[A-Z][a-zA-Z]+)`),
}

// leadershipNoise marks captures that are navigation text, not names.
var leadershipNoise = []string{"cookie", "privacy", "policy", "terms"}

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// businessEmailPrefixes get promoted to the front of the email list.
var businessEmailPrefixes = []string{
	"info@", "contact@", "amministrazione@", "segreteria@",
	"commerciale@", "vendite@", "sales@", "marketing@",
}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+39\s*[0-9\s\-.]{8,15}`),
	regexp.MustCompile(`0[0-9]{1,3}[\s\-.]*[0-9]{6,10}`),
	regexp.MustCompile(`[0-9]{3}[\s\-.]*[0-9]{3}[\s\-.]*[0-9]{4}`),
	regexp.MustCompile(`(?i)tel[:\s]*([0-9+\s\-.]{8,20})`),
	regexp.MustCompile(`(?i)telefono[:\s]*([0-9+\s\-.]{8,20})`),
}

var phoneCleanRe = regexp.MustCompile(`[^\d+]`)

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:via|viale|piazza|corso|largo|strada|vicolo)\s+([A-Z][^,\n]*\d+[^,\n]*(?:,\s*\d{5}[^,\n]*)?(?:,\s*[A-Z][a-zA-Z\s]*)?)`),
	regexp.MustCompile(`(?i)sede\s*(?:legale|operativa)?[:\s]*([A-Z][^.\n]*(?:via|viale|piazza|corso|largo)[^.\n]*)`),
	regexp.MustCompile(`(?i)indirizzo[:\s]*([A-Z][^.\n]*(?:via|viale|piazza|corso|largo)[^.\n]*)`),
	regexp.MustCompile(`(?i)([A-Z][^,\n]*(?:via|viale|piazza|corso|largo)[^,\n]*,\s*\d{5}\s*[A-Z][a-zA-Z\s]*(?:\([A-Z]{2}\))?)`),
	regexp.MustCompile(`(?i)(?:presso|c/o)[:\s]*([A-Z][^.\n]*(?:via|viale|piazza|corso|largo)[^.\n]*)`),
}

var addressSpaceRe = regexp.MustCompile(`\s+`)

// referenceKeywords qualify a sentence as a business description.
var referenceKeywords = []string{
	"servizi", "products", "prodotti", "soluzioni", "solutions",
	"specializzati", "esperienza", "competenze", "tecnologie",
	"settori", "mercati", "clienti", "progetti", "innovation",
	"innovazione", "software", "hardware", "sistemi", "systems",
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// ExtractPage harvests one page's text into the accumulated
// intelligence. Call once per fetched page, then Cleanup once at the
// end.
func ExtractPage(pageText string, w *types.WebIntelligence) {
	extractLeadership(pageText, w)
	extractEmails(pageText, w)
	extractPhones(pageText, w)
	extractAddresses(pageText, w)
	extractReferences(pageText, w)
}

func extractLeadership(text string, w *types.WebIntelligence) {
	if w.CEOManagingDirector != "" {
		return
	}
	for _, re := range leadershipPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if len(name) <= 5 || len(name) >= 60 {
				continue
			}
			if containsAny(strings.ToLower(name), leadershipNoise) {
				continue
			}
			w.CEOManagingDirector = name
			return
		}
	}
}

func extractEmails(text string, w *types.WebIntelligence) {
	for _, email := range emailRe.FindAllString(text, -1) {
		email = strings.ToLower(email)
		if containsString(w.InfoEmails, email) {
			continue
		}
		if containsAny(email, businessEmailPrefixes) {
			w.InfoEmails = append([]string{email}, w.InfoEmails...)
		} else {
			w.InfoEmails = append(w.InfoEmails, email)
		}
	}
}

func extractPhones(text string, w *types.WebIntelligence) {
	for _, re := range phonePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			raw := m[0]
			if len(m) > 1 {
				raw = m[1]
			}
			phone := phoneCleanRe.ReplaceAllString(raw, "")
			if len(phone) >= 8 && !containsString(w.PhoneNumbers, phone) {
				w.PhoneNumbers = append(w.PhoneNumbers, phone)
			}
		}
	}
}

func extractAddresses(text string, w *types.WebIntelligence) {
	for _, re := range addressPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			address := addressSpaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
			if len(address) <= 15 {
				continue
			}
			if len(address) > 250 {
				// Back off to a rune boundary; accented street names
				// must not be cut mid-rune.
				cut := 250
				for cut > 0 && !utf8.RuneStart(address[cut]) {
					cut--
				}
				address = address[:cut]
			}
			if !containsString(w.Addresses, address) {
				w.Addresses = append(w.Addresses, address)
			}
		}
	}
}

func extractReferences(text string, w *types.WebIntelligence) {
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 25 || len(sentence) >= 350 {
			continue
		}
		if !containsAny(strings.ToLower(sentence), referenceKeywords) {
			continue
		}
		if !containsString(w.CompanyReferences, sentence) {
			w.CompanyReferences = append(w.CompanyReferences, sentence)
		}
	}
}

// Cleanup applies the output caps: 8 emails, 5 phone numbers, 4
// addresses, 12 references.
func Cleanup(w *types.WebIntelligence) {
	w.InfoEmails = capList(w.InfoEmails, 8)
	w.PhoneNumbers = capList(w.PhoneNumbers, 5)
	w.Addresses = capList(w.Addresses, 4)
	w.CompanyReferences = capList(w.CompanyReferences, 12)
}

func capList(items []string, n int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
