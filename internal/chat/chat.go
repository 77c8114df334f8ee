// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat answers natural-language questions about the indexed
// companies. Query understanding and answer generation go through the
// model when it is available; both degrade to deterministic behavior
// when it is not, so the interface works offline.
// Implements: docs/ARCHITECTURE § Chat Interface.
package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/emazzini/visura-engine/internal/ollama"
	"github.com/emazzini/visura-engine/internal/store"
	"github.com/emazzini/visura-engine/internal/textutil"
	"github.com/emazzini/visura-engine/pkg/types"
)

const (
	defaultMaxContext   = 6000
	defaultHistoryLimit = 10

	// searchResultCap bounds full-text matches pulled into one answer.
	searchResultCap = 5
)

// exitWords end the interactive loop.
var exitWords = []string{"exit", "quit", "bye", "ciao"}

// Exchange is one question and its answer.
type Exchange struct {
	Query    string
	Response string
}

// Session holds the conversational state over the company store.
type Session struct {
	Store  *store.Store
	Model  ollama.Generator // nil disables the model path
	Config types.ChatConfig

	history []Exchange
}

// New builds a chat session.
func New(st *store.Store, model ollama.Generator, cfg types.ChatConfig) *Session {
	return &Session{Store: st, Model: model, Config: cfg}
}

// History returns the retained exchanges, oldest first.
func (s *Session) History() []Exchange {
	return s.history
}

// queryPlan is the model's breakdown of a user question. The fallback
// plan treats the whole question as both identifier and search input.
type queryPlan struct {
	Intent             string   `json:"intent"`
	CompanyIdentifiers []string `json:"company_identifiers"`
	InformationType    []string `json:"information_type"`
	SearchTerms        []string `json:"search_terms"`
	Confidence         float64  `json:"confidence"`
}

// Ask answers one question. It never fails: retrieval misses and model
// failures produce degraded answers, not errors.
func (s *Session) Ask(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "Puoi farmi una domanda su un'azienda italiana?"
	}

	plan := s.analyzeQuery(ctx, query)
	companies := s.findCompanies(ctx, plan)

	var response string
	if len(companies) == 0 {
		response = fmt.Sprintf("Non ho trovato aziende corrispondenti a: %s\n\n"+
			"Prova con il nome completo dell'azienda, il codice fiscale o una parte del nome.", query)
	} else {
		response = s.respond(ctx, query, companies)
	}

	s.record(query, response)
	return response
}

// analyzeQuery asks the model to break the question into search
// parameters, falling back to key-term extraction.
func (s *Session) analyzeQuery(ctx context.Context, query string) queryPlan {
	if s.Model != nil {
		raw, err := s.Model.Generate(ctx, ollama.QueryAnalysisPrompt(query))
		if err == nil {
			var plan queryPlan
			if err := ollama.ParseObject(raw, &plan); err == nil && len(plan.CompanyIdentifiers)+len(plan.SearchTerms) > 0 {
				return plan
			}
		}
	}
	return queryPlan{
		Intent:             "search_company",
		CompanyIdentifiers: []string{query},
		InformationType:    []string{"all"},
		SearchTerms:        textutil.KeyTerms(query),
		Confidence:         0.5,
	}
}

// findCompanies resolves the plan's identifiers against the store, then
// falls back to full-text search over the extracted terms.
func (s *Session) findCompanies(ctx context.Context, plan queryPlan) []*types.UnifiedCompany {
	var companies []*types.UnifiedCompany
	seen := make(map[string]bool)

	for _, id := range plan.CompanyIdentifiers {
		company, err := s.Store.Lookup(ctx, id)
		if err != nil {
			continue
		}
		key := store.RecordKey(&company.CompanyRecord)
		if !seen[key] {
			seen[key] = true
			companies = append(companies, company)
		}
	}
	if len(companies) > 0 {
		return companies
	}

	match := store.MatchQuery(plan.SearchTerms)
	if match == "" {
		return nil
	}
	results, err := s.Store.Search(ctx, store.QueryOptions{
		Query:      match,
		MaxResults: searchResultCap,
	})
	if err != nil {
		return nil
	}
	for i := range results {
		company := &results[i].UnifiedCompany
		key := store.RecordKey(&company.CompanyRecord)
		if !seen[key] {
			seen[key] = true
			companies = append(companies, company)
		}
	}
	return companies
}

// respond generates the answer from the retrieved companies, preferring
// the model and degrading to a deterministic summary.
func (s *Session) respond(ctx context.Context, query string, companies []*types.UnifiedCompany) string {
	if s.Model != nil {
		contextJSON, err := json.MarshalIndent(companies, "", "  ")
		if err == nil {
			maxContext := s.Config.MaxContextLength
			if maxContext <= 0 {
				maxContext = defaultMaxContext
			}
			prompt := ollama.ChatResponsePrompt(query, string(contextJSON), maxContext)
			if answer, err := s.Model.Generate(ctx, prompt); err == nil {
				if answer = strings.TrimSpace(answer); answer != "" {
					return answer
				}
			}
		}
	}
	return fallbackResponse(query, companies)
}

// fallbackResponse summarizes the retrieved companies without the model.
func fallbackResponse(query string, companies []*types.UnifiedCompany) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ecco le informazioni trovate per: %s\n", query)

	for _, c := range companies {
		fmt.Fprintf(&b, "\n%s\n", c.CompanyName)
		if c.LegalForm != "" {
			fmt.Fprintf(&b, "  forma giuridica: %s\n", c.LegalForm)
		}
		if c.TaxCode != "" {
			fmt.Fprintf(&b, "  codice fiscale: %s\n", c.TaxCode)
		}
		if c.Website != "" {
			fmt.Fprintf(&b, "  sito web: %s\n", c.Website)
		}
		if c.PECEmail != "" {
			fmt.Fprintf(&b, "  PEC: %s\n", c.PECEmail)
		}
		if intel := c.Intelligence; intel != nil {
			if len(intel.InfoEmails) > 0 {
				fmt.Fprintf(&b, "  email: %s\n", strings.Join(intel.InfoEmails, ", "))
			}
			if len(intel.PhoneNumbers) > 0 {
				fmt.Fprintf(&b, "  telefono: %s\n", strings.Join(intel.PhoneNumbers, ", "))
			}
		}
		if cls := c.Classification; cls != nil && cls.PrimaryCategory() != "" {
			fmt.Fprintf(&b, "  settore: %s\n", cls.PrimaryCategory())
		}
		if certs := c.Certifications; certs != nil && certs.Total() > 0 {
			fmt.Fprintf(&b, "  certificazioni registrate: %d\n", certs.Total())
		}
	}

	b.WriteString("\nChiedi informazioni più specifiche per dettagli aggiuntivi.")
	return b.String()
}

func (s *Session) record(query, response string) {
	limit := s.Config.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	s.history = append(s.history, Exchange{Query: query, Response: response})
	if len(s.history) > limit {
		s.history = s.history[len(s.history)-limit:]
	}
}

// Run drives the interactive loop: read a question, answer it, repeat
// until an exit word or EOF.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	count, err := s.Store.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking store: %w", err)
	}
	fmt.Fprintf(w, "Assistente aziende italiane. %d aziende indicizzate.\n", count)
	fmt.Fprintf(w, "Scrivi 'exit' per uscire.\n")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "\n> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if isExitWord(query) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprintf(w, "\n%s\n", s.Ask(ctx, query))
	}

	fmt.Fprintln(w, "\nArrivederci.")
	return scanner.Err()
}

func isExitWord(query string) bool {
	query = strings.ToLower(query)
	for _, word := range exitWords {
		if query == word {
			return true
		}
	}
	return false
}
