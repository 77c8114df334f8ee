// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package certifications performs the deterministic certification
// extraction over registry document text: trigger lines anchor a
// context window, bucket-specific patterns harvest snippets from it.
// Implements: docs/ARCHITECTURE § Certification Extraction.
package certifications

import "regexp"

// bucket describes one certification category: the trigger groups that
// anchor a line (every term of any one group must appear, lowercased
// substring match), the context slice [i-before, i+after) around it,
// the harvest patterns, and the minimum snippet length.
type bucket struct {
	name     string
	triggers [][]string
	before   int
	after    int
	patterns []*regexp.Regexp
	minLen   int
}

// Certificate-number and issuer patterns recur across the three
// management-system buckets on purpose: on real documents those blocks
// sit adjacent and share layout, so each bucket harvests whatever lands
// in its window even when a neighboring block bleeds in.
var (
	certNumberRe  = regexp.MustCompile(`(?i)certificato n[°.\s]*([A-Z0-9\-/]+)`)
	issuedByRe    = regexp.MustCompile(`(?i)emesso da[:\s]*([^.\n]{10,80})`)
	firstIssuedRe = regexp.MustCompile(`(?i)data prima emissione[:\s]*([0-9/]+)`)
	expiryRe      = regexp.MustCompile(`(?i)scadenza[:\s]*([0-9/]+)`)
)

var buckets = []bucket{
	{
		name:     "soa",
		triggers: [][]string{{"attestazione soa"}, {"codice soa"}, {"categorie"}},
		before:   3,
		after:    10,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)codice soa[:\s]*([0-9]{11})`),
			regexp.MustCompile(`(?i)numero attestazione[:\s]*([0-9/]+)`),
			regexp.MustCompile(`(?i)attestazione[:\s]*n[°.\s]*([0-9/]+)`),
			regexp.MustCompile(`(?i)rilasciata il[:\s]*([0-9/]+)`),
			expiryRe,
			regexp.MustCompile(`(?i)og[0-9]+.*?classe\s+[ivx]+.*?€\s*[\d.,]+`),
			regexp.MustCompile(`(?i)os[0-9]+.*?classe\s+[ivx]+.*?€\s*[\d.,]+`),
		},
		minLen: 4,
	},
	{
		name:     "quality",
		triggers: [][]string{{"iso 9001"}, {"qualità"}, {"quality"}},
		before:   2,
		after:    8,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)uni en iso (9001):[0-9]{4}`),
			certNumberRe,
			issuedByRe,
			firstIssuedRe,
			regexp.MustCompile(`(?i)settore[:\s]*([0-9]+\s*-\s*[^.\n]+)`),
		},
		minLen: 1,
	},
	{
		name:     "environmental",
		triggers: [][]string{{"iso 14001"}, {"ambientale"}, {"environmental"}},
		before:   2,
		after:    8,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)uni en iso (14001):[0-9]{4}`),
			regexp.MustCompile(`(?i)sistema di gestione ambientale`),
			certNumberRe,
			issuedByRe,
			firstIssuedRe,
		},
		minLen: 1,
	},
	{
		name:     "safety",
		triggers: [][]string{{"45001"}, {"18001"}, {"sicurezza"}, {"safety"}},
		before:   2,
		after:    8,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)uni iso (45001):[0-9]{4}`),
			regexp.MustCompile(`(?i)ohsas (18001):[0-9]{4}`),
			regexp.MustCompile(`(?i)salute e sicurezza sul lavoro`),
			certNumberRe,
			issuedByRe,
			firstIssuedRe,
		},
		minLen: 1,
	},
	{
		name:     "environmental_registration",
		triggers: [][]string{{"albo", "gestori"}},
		before:   1,
		after:    6,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)albo nazionale gestori ambientali`),
			regexp.MustCompile(`(?i)numero iscrizione[:\s]*([A-Z0-9/]+)`),
			regexp.MustCompile(`(?i)sezione[:\s]*([^.\n]+)`),
			regexp.MustCompile(`(?i)categoria[:\s]*([^.\n]+)`),
			expiryRe,
		},
		minLen: 1,
	},
	{
		name:     "technical_authorization",
		triggers: [][]string{{"abilitazioni"}, {"lettera a"}, {"lettera b"}, {"impiantistiche"}},
		before:   1,
		after:    4,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)lettera [a-z][:\s]*([^.\n]+)`),
			regexp.MustCompile(`(?i)abilitazioni impiantistiche`),
			regexp.MustCompile(`(?i)l\.p\.\s*bz[^.\n]*`),
			regexp.MustCompile(`(?i)impianti elettrici[^.\n]*`),
			regexp.MustCompile(`(?i)impianti radiotelevisivi[^.\n]*`),
		},
		minLen: 1,
	},
}
