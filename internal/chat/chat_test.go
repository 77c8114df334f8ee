// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emazzini/visura-engine/internal/store"
	"github.com/emazzini/visura-engine/pkg/types"
)

// funcModel dispatches on prompt content so one stub can serve both the
// query analysis and the answer generation calls.
type funcModel func(prompt string) (string, error)

func (f funcModel) Generate(ctx context.Context, prompt string) (string, error) {
	return f(prompt)
}

var downModel = funcModel(func(string) (string, error) {
	return "", errors.New("connection refused")
})

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	companies := []*types.UnifiedCompany{
		{
			CompanyRecord: types.CompanyRecord{
				CompanyName: "ACME Costruzioni SRL",
				TaxCode:     "01234567890",
				Website:     "https://acme.it",
			},
			Intelligence: &types.WebIntelligence{
				InfoEmails: []string{"info@acme.it"},
			},
			Classification: &types.Classification{
				Categories: []types.CategoryScore{{Category: "Impiantistica Elettrica", Confidence: 0.8}},
			},
			Certifications: &types.CertificationSet{QualityCertifications: []string{"9001"}},
		},
		{
			CompanyRecord: types.CompanyRecord{
				CompanyName: "Beta Scavi SNC",
				TaxCode:     "09876543210",
			},
		},
	}

	data, err := json.Marshal(companies)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "unified.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = s.Ingest(context.Background(), path, &bytes.Buffer{})
	require.NoError(t, err)
	return s
}

func TestAskFallbackFindsCompany(t *testing.T) {
	session := New(newTestStore(t), downModel, types.ChatConfig{})

	answer := session.Ask(context.Background(), "Dimmi tutto su ACME")

	assert.Contains(t, answer, "ACME Costruzioni SRL")
	assert.Contains(t, answer, "https://acme.it")
	assert.Contains(t, answer, "info@acme.it")
	assert.Contains(t, answer, "Impiantistica Elettrica")
	assert.Contains(t, answer, "certificazioni registrate: 1")
}

func TestAskModelDriven(t *testing.T) {
	model := funcModel(func(prompt string) (string, error) {
		if strings.Contains(prompt, "FORMATO RISPOSTA JSON") {
			return `{"intent": "get_info", "company_identifiers": ["01234567890"], "search_terms": []}`, nil
		}
		// Answer generation: the retrieved record must be in the prompt.
		if !strings.Contains(prompt, "ACME Costruzioni SRL") {
			return "", errors.New("missing context")
		}
		return "ACME Costruzioni SRL opera nell'impiantistica elettrica.", nil
	})

	session := New(newTestStore(t), model, types.ChatConfig{})
	answer := session.Ask(context.Background(), "Cosa fa l'azienda con codice fiscale 01234567890?")

	assert.Equal(t, "ACME Costruzioni SRL opera nell'impiantistica elettrica.", answer)
	require.Len(t, session.History(), 1)
	assert.Equal(t, answer, session.History()[0].Response)
}

func TestAskNoMatch(t *testing.T) {
	session := New(newTestStore(t), downModel, types.ChatConfig{})
	answer := session.Ask(context.Background(), "qualcosa di inesistente xyzzy")
	assert.Contains(t, answer, "Non ho trovato aziende")
}

func TestAskEmptyQuery(t *testing.T) {
	session := New(newTestStore(t), downModel, types.ChatConfig{})
	answer := session.Ask(context.Background(), "   ")
	assert.Contains(t, answer, "domanda")
	assert.Empty(t, session.History())
}

func TestHistoryLimit(t *testing.T) {
	session := New(newTestStore(t), downModel, types.ChatConfig{HistoryLimit: 2})

	session.Ask(context.Background(), "prima domanda su ACME")
	session.Ask(context.Background(), "seconda domanda su ACME")
	session.Ask(context.Background(), "terza domanda su ACME")

	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, "seconda domanda su ACME", history[0].Query)
	assert.Equal(t, "terza domanda su ACME", history[1].Query)
}

func TestRunExitsOnExitWord(t *testing.T) {
	session := New(newTestStore(t), downModel, types.ChatConfig{})

	var out bytes.Buffer
	err := session.Run(context.Background(), strings.NewReader("exit\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "2 aziende indicizzate")
	assert.Contains(t, out.String(), "Arrivederci")
}

func TestRunAnswersThenEOF(t *testing.T) {
	session := New(newTestStore(t), downModel, types.ChatConfig{})

	var out bytes.Buffer
	err := session.Run(context.Background(), strings.NewReader("informazioni su ACME\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ACME Costruzioni SRL")
}
