// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textutil

import "strings"

// SectionProfile names one topical slice of a registry document and the
// keywords that anchor it. Window is the number of context lines kept on
// each side of an anchor line.
type SectionProfile struct {
	Name     string
	Keywords []string
	Window   int
}

// The four topical profiles carved out of every chamber document. The
// windows differ on purpose: business objects sprawl across many lines,
// financial figures sit tight around their labels.
var (
	CertificationProfile = SectionProfile{
		Name: "certifications",
		Keywords: []string{
			"certificazione", "attestazione", "qualità", "quality",
			"ambientale", "environmental", "sicurezza", "safety",
			"soa", "iso", "uni", "accredia", "sistema di gestione",
			"certificato", "emesso da", "data prima emissione",
			"scadenza", "settore", "norma",
		},
		Window: 5,
	}

	BusinessProfile = SectionProfile{
		Name: "business_activities",
		Keywords: []string{
			"oggetto sociale", "attività", "servizi", "prodotti",
			"settore", "specializzazione", "ateco", "codice attività",
			"descrizione attività", "settore di attività",
			"ramo di attività", "categoria merceologica",
		},
		Window: 8,
	}

	TechnicalProfile = SectionProfile{
		Name: "technical_auth",
		Keywords: []string{
			"abilitazioni", "lettera a", "lettera b", "lettera c",
			"lettera d", "impiantistiche", "impianti elettrici",
			"impianti radiotelevisivi", "impianti elettronici",
			"autorizzazioni tecniche", "abilitazione tecnica",
		},
		Window: 4,
	}

	FinancialProfile = SectionProfile{
		Name: "financial",
		Keywords: []string{
			"capitale sociale", "fatturato", "ricavi", "dipendenti",
			"addetti", "bilancio", "patrimonio netto", "utile",
			"perdita", "reddito",
		},
		Window: 3,
	}
)

// Profiles lists the topical profiles in emission order.
var Profiles = []SectionProfile{
	CertificationProfile,
	BusinessProfile,
	TechnicalProfile,
	FinancialProfile,
}

// ExtractSection returns the lines of text around every line containing
// one of the profile's keywords (case-insensitive substring match). Each
// anchor contributes the window [i-Window, i+Window] clamped to the
// document; overlapping windows merge naturally because duplicate lines
// are kept once, in first-seen order. Returns "" when nothing anchors.
func ExtractSection(text string, profile SectionProfile) string {
	lines := strings.Split(text, "\n")
	var relevant []string

	for i, line := range lines {
		lower := strings.ToLower(line)
		anchored := false
		for _, kw := range profile.Keywords {
			if strings.Contains(lower, kw) {
				anchored = true
				break
			}
		}
		if !anchored {
			continue
		}
		start := i - profile.Window
		if start < 0 {
			start = 0
		}
		end := i + profile.Window + 1
		if end > len(lines) {
			end = len(lines)
		}
		relevant = append(relevant, lines[start:end]...)
	}

	seen := make(map[string]bool, len(relevant))
	unique := relevant[:0]
	for _, line := range relevant {
		if seen[line] {
			continue
		}
		seen[line] = true
		unique = append(unique, line)
	}
	return strings.Join(unique, "\n")
}

// ExtractSections carves all four topical sections out of text and maps
// them by profile name. The full text rides along under "full_text" so
// downstream consumers can fall back when a section comes up empty.
func ExtractSections(text string) map[string]string {
	sections := make(map[string]string, len(Profiles)+1)
	for _, p := range Profiles {
		sections[p.Name] = ExtractSection(text, p)
	}
	sections["full_text"] = text
	return sections
}
