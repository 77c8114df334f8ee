// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ollama

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/emazzini/visura-engine/pkg/types"
)

// The prompts are Italian because the documents and websites are; the
// model answers structure, not language.

// documentPromptTmpl asks for the full structured reading of one
// chamber document.
var documentPromptTmpl = template.Must(template.New("document").Parse(`Analizza il seguente documento della Camera di Commercio per l'azienda italiana "{{.CompanyName}}" ed estrai informazioni strutturate dettagliate.

CONTENUTO DOCUMENTO:
{{.Content}}

ISTRUZIONI DETTAGLIATE:
1. Estrai TUTTE le certificazioni con dettagli completi (numeri certificato, enti emittenti, date)
2. Trova attestazioni SOA con codici, categorie e classi specifiche
3. Identifica iscrizioni ad albi professionali e ambientali
4. Estrai abilitazioni tecniche e impiantistiche
5. Trova dati finanziari, dipendenti e informazioni societarie

FORMATO RISPOSTA JSON:
{
    "certifications": {
        "soa_attestations": [{"codice_soa": "numero codice", "numero_attestazione": "numero/codice", "rilasciata_il": "data", "scadenza": "data", "categorie": ["OG3 Classe I"], "ente_rilascio": "nome ente"}],
        "quality_certifications": [{"norma": "UNI EN ISO 9001:2015", "certificato_numero": "numero certificato", "emesso_da": "ente certificatore", "data_prima_emissione": "data", "settore": "settore applicazione", "descrizione": "Sistema di Gestione per la Qualità"}],
        "environmental_certifications": [{"norma": "UNI EN ISO 14001:2015", "certificato_numero": "numero certificato", "emesso_da": "ente certificatore", "data_prima_emissione": "data", "descrizione": "Sistema di Gestione Ambientale"}],
        "safety_certifications": [{"norma": "UNI ISO 45001:2018", "certificato_numero": "numero certificato", "emesso_da": "ente certificatore", "data_prima_emissione": "data", "descrizione": "Sistema di Gestione per la Salute e Sicurezza sul Lavoro"}],
        "environmental_registrations": [{"albo": "Albo Nazionale Gestori Ambientali", "numero_iscrizione": "codice iscrizione", "sezione": "sezione territoriale", "categoria": "categoria e descrizione", "scadenza": "data scadenza"}],
        "technical_authorizations": [{"tipo": "Abilitazioni impiantistiche", "riferimento_normativo": "L.P. BZ-1/2008", "lettere": ["Lettera A: descrizione"]}]
    },
    "business_activities": {"primary_activity": "attività principale dettagliata", "secondary_activities": ["attività secondarie"], "ateco_codes": ["codici ATECO con descrizione"], "specializations": ["specializzazioni tecniche"]},
    "financial_data": {"share_capital": "capitale sociale", "employees": "numero dipendenti", "revenue": "fatturato se disponibile"},
    "analysis_confidence": 0.85,
    "key_insights": ["insight dettagliati sulle certificazioni e competenze"]
}

IMPORTANTE: Estrai TUTTI i numeri di certificato, date, enti emittenti e dettagli specifici che trovi nel documento.
Rispondi SOLO con JSON valido:`))

// classificationPromptTmpl asks for every applicable taxonomy category
// for a company website.
var classificationPromptTmpl = template.Must(template.New("classification").Parse(`Analizza il seguente contenuto di un sito web di un'azienda italiana e identifica TUTTE le aree industriali in cui opera secondo la tassonomia fornita.

AZIENDA: {{.CompanyName}}

CONTENUTO SITO WEB:
{{.Content}}

TASSONOMIA DISPONIBILE:
{{.Taxonomy}}

ISTRUZIONI CRITICHE:
1. NON limitarti a una sola categoria - identifica TUTTE le aree operative dell'azienda
2. Analizza ogni paragrafo per tecnologie, servizi, prodotti, competenze, certificazioni
3. Includi categorie anche con confidence basso (0.3+) se c'è evidenza testuale
4. Considera sinonimi, acronimi e terminologie tecniche specifiche

FORMATO RISPOSTA JSON:
{
    "all_applicable_categories": [{"category": "nome_categoria", "confidence": 0.85, "subcategories_found": ["sub1", "sub2"], "evidence_keywords": ["keyword1", "keyword2"]}],
    "comprehensive_technology_analysis": {"technology_stack": ["tech1", "tech2"], "market_verticals": ["verticale1"]},
    "business_intelligence": {"business_model": "descrizione_modello"},
    "confidence_analysis": {"overall_confidence": 0.82}
}

IMPORTANTE: Identifica OGNI possibile area operativa, anche quelle secondarie o di supporto.
Rispondi SOLO con JSON valido:`))

// queryAnalysisPromptTmpl asks the model to break a chat question into
// search parameters.
var queryAnalysisPromptTmpl = template.Must(template.New("queryAnalysis").Parse(`Analizza la seguente domanda dell'utente su aziende italiane e determina:

DOMANDA UTENTE: "{{.Query}}"

ISTRUZIONI:
1. Identifica l'intento della domanda (ricerca azienda, informazioni specifiche, confronto, etc.)
2. Estrai nomi di aziende, codici fiscali, o altri identificatori
3. Determina che tipo di informazioni sono richieste

FORMATO RISPOSTA JSON:
{
    "intent": "search_company|get_info|compare|list|other",
    "company_identifiers": ["nome1", "codice_fiscale1"],
    "information_type": ["contacts", "certifications", "technologies", "financial", "websites", "all"],
    "search_terms": ["termine1", "termine2"],
    "confidence": 0.85
}

Rispondi SOLO con JSON valido:`))

// chatResponsePromptTmpl asks for a conversational answer grounded in
// the retrieved company data.
var chatResponsePromptTmpl = template.Must(template.New("chatResponse").Parse(`Sei un assistente esperto di informazioni aziendali italiane. Rispondi alla domanda dell'utente usando i dati forniti.

DOMANDA UTENTE: "{{.Query}}"

DATI DISPONIBILI:
{{.Context}}

ISTRUZIONI:
1. Rispondi in italiano in modo naturale e conversazionale
2. Usa i dati forniti per dare informazioni precise
3. Se non trovi informazioni specifiche, dillo chiaramente
4. Includi dettagli rilevanti ma mantieni la risposta concisa
5. Se ci sono più aziende, confrontale brevemente

Rispondi in modo naturale e utile:`))

// QueryAnalysisPrompt renders the chat query analysis prompt.
func QueryAnalysisPrompt(query string) string {
	var buf bytes.Buffer
	if err := queryAnalysisPromptTmpl.Execute(&buf, struct{ Query string }{query}); err != nil {
		panic(err)
	}
	return buf.String()
}

// ChatResponsePrompt renders the answer generation prompt. Context is
// truncated to maxContext characters with a trailing ellipsis when cut.
func ChatResponsePrompt(query, context string, maxContext int) string {
	if maxContext > 0 && len(context) > maxContext {
		context = Truncate(context, maxContext) + "..."
	}
	var buf bytes.Buffer
	err := chatResponsePromptTmpl.Execute(&buf, struct {
		Query, Context string
	}{query, context})
	if err != nil {
		panic(err)
	}
	return buf.String()
}

// DocumentPrompt renders the chamber document analysis prompt. Content
// is truncated to maxContent characters (<=0 means no cap).
func DocumentPrompt(companyName, content string, maxContent int) string {
	var buf bytes.Buffer
	err := documentPromptTmpl.Execute(&buf, struct {
		CompanyName, Content string
	}{companyName, Truncate(content, maxContent)})
	if err != nil {
		// Static template over strings; execution cannot fail.
		panic(err)
	}
	return buf.String()
}

// ClassificationPrompt renders the website classification prompt. The
// taxonomy is summarized one category per line with its first four
// subcategories.
func ClassificationPrompt(companyName, content string, taxonomy types.Taxonomy, maxContent int) string {
	names := make([]string, 0, len(taxonomy))
	for name := range taxonomy {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		subs := taxonomy[name]
		if len(subs) > 4 {
			subs = subs[:4]
		}
		lines = append(lines, fmt.Sprintf("- %s: %s...", name, strings.Join(subs, ", ")))
	}

	var buf bytes.Buffer
	err := classificationPromptTmpl.Execute(&buf, struct {
		CompanyName, Content, Taxonomy string
	}{companyName, Truncate(content, maxContent), strings.Join(lines, "\n")})
	if err != nil {
		panic(err)
	}
	return buf.String()
}

// Truncate caps s at max bytes on a rune boundary; non-positive max
// means no cap.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }
