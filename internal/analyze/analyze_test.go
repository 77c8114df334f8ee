// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emazzini/visura-engine/internal/ollama"
	"github.com/emazzini/visura-engine/internal/registry"
	"github.com/emazzini/visura-engine/pkg/types"
)

const visuraText = `CAMERA DI COMMERCIO INDUSTRIA ARTIGIANATO E AGRICOLTURA
Denominazione: ACME COSTRUZIONI SRL
Codice fiscale: 01234567890
Attestazione SOA categoria OG1 Classe III
Certificato n. ABC123 sistema di gestione qualita UNI EN ISO 9001:2015
`

type stubModel struct {
	reply string
	err   error
}

func (s stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func fixedExtractor(text string, err error) TextExtractor {
	return func(path string) (string, error) { return text, err }
}

// newTestAnalyzer disables PDF validation; fixtures are plain text, not
// real PDF files.
func newTestAnalyzer(reg *registry.Registry, model ollama.Generator, cfg types.AnalysisConfig) *Analyzer {
	a := New(reg, model, cfg)
	a.Validate = nil
	return a
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.Add(&types.CompanyRecord{
		CompanyName: "ACME Costruzioni SRL",
		TaxCode:     "01234567890",
		VATNumber:   "01234567890",
	})
	return reg
}

func TestAnalyzeDocumentMatchesCompany(t *testing.T) {
	a := newTestAnalyzer(testRegistry(t), nil, types.AnalysisConfig{})
	a.ExtractText = fixedExtractor(visuraText, nil)

	result := a.AnalyzeDocument(context.Background(), "/data/acme.pdf")

	assert.Equal(t, "acme.pdf", result.DocumentName)
	assert.Equal(t, types.StatusCompleted, result.Status)
	assert.Equal(t, "ACME Costruzioni SRL", result.CompanyName)
	require.NotNil(t, result.MatchedCompany)
	assert.Equal(t, "01234567890", result.MatchedCompany.TaxCode)
	require.NotNil(t, result.DirectExtraction)
	assert.Equal(t, len(visuraText), result.DocumentLength)
	assert.Greater(t, result.ProcessedLength, 0)
	assert.NotEmpty(t, result.Timestamp)
	assert.Nil(t, result.AIAnalysis)
}

func TestAnalyzeDocumentUnmatchedStillCompletes(t *testing.T) {
	a := newTestAnalyzer(testRegistry(t), nil, types.AnalysisConfig{})
	a.ExtractText = fixedExtractor("Documento senza identificativi utili.\nSolo testo libero.", nil)

	result := a.AnalyzeDocument(context.Background(), "mystery.pdf")

	assert.Equal(t, types.StatusCompleted, result.Status)
	assert.Equal(t, types.UnknownCompany, result.CompanyName)
	assert.Nil(t, result.MatchedCompany)
}

func TestAnalyzeDocumentNoText(t *testing.T) {
	a := newTestAnalyzer(nil, nil, types.AnalysisConfig{})
	a.ExtractText = fixedExtractor("   \n  ", nil)

	result := a.AnalyzeDocument(context.Background(), "blank.pdf")

	assert.Equal(t, types.StatusFailed, result.Status)
	assert.Equal(t, "could not extract text from document", result.Error)
	assert.Nil(t, result.MatchedCompany)
}

func TestAnalyzeDocumentInvalidPDFFails(t *testing.T) {
	a := newTestAnalyzer(nil, nil, types.AnalysisConfig{})
	a.Validate = func(path string) error {
		return errors.New("validating corrupt.pdf: xref table corrupt")
	}
	a.ExtractText = fixedExtractor(visuraText, nil)

	result := a.AnalyzeDocument(context.Background(), "corrupt.pdf")

	assert.Equal(t, types.StatusFailed, result.Status)
	assert.Contains(t, result.Error, "xref table corrupt")
	assert.Nil(t, result.MatchedCompany)
}

func TestAnalyzeDocumentExtractionError(t *testing.T) {
	a := newTestAnalyzer(nil, nil, types.AnalysisConfig{})
	a.ExtractText = fixedExtractor("", errors.New("encrypted document"))

	result := a.AnalyzeDocument(context.Background(), "locked.pdf")

	assert.Equal(t, types.StatusFailed, result.Status)
	assert.Contains(t, result.Error, "encrypted document")
}

func TestAnalyzeDocumentModelPayload(t *testing.T) {
	a := newTestAnalyzer(testRegistry(t), stubModel{
		reply: `Ecco l'analisi: {"analysis_confidence": 0.9, "key_insights": ["Impresa certificata ISO 9001"]}`,
	}, types.AnalysisConfig{})
	a.ExtractText = fixedExtractor(visuraText, nil)

	result := a.AnalyzeDocument(context.Background(), "acme.pdf")

	require.NotNil(t, result.AIAnalysis)
	assert.Equal(t, 0.9, result.AIAnalysis.AnalysisConfidence)
	assert.Equal(t, []string{"Impresa certificata ISO 9001"}, result.AIAnalysis.KeyInsights)
}

func TestAnalyzeDocumentModelFailureDegrades(t *testing.T) {
	for name, model := range map[string]stubModel{
		"transport error": {err: errors.New("connection refused")},
		"no json":         {reply: "mi dispiace, non posso aiutarti"},
	} {
		t.Run(name, func(t *testing.T) {
			a := newTestAnalyzer(testRegistry(t), model, types.AnalysisConfig{})
			a.ExtractText = fixedExtractor(visuraText, nil)

			result := a.AnalyzeDocument(context.Background(), "acme.pdf")

			assert.Equal(t, types.StatusCompleted, result.Status)
			assert.Nil(t, result.AIAnalysis)
		})
	}
}

func TestAnalyzeAll(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	outFile := filepath.Join(dir, "results.json")

	a := newTestAnalyzer(testRegistry(t), nil, types.AnalysisConfig{
		VisureDir:  dir,
		OutputFile: outFile,
	})
	a.ExtractText = func(path string) (string, error) {
		switch filepath.Base(path) {
		case "a.pdf":
			return visuraText, nil
		case "b.pdf":
			return "", errors.New("damaged xref table")
		default:
			panic("boom")
		}
	}

	var progress bytes.Buffer
	summary, err := a.AnalyzeAll(context.Background(), &progress)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Errored)
	assert.Equal(t, 3, summary.Total())
	assert.True(t, summary.HasFailures())
	assert.Contains(t, progress.String(), "analyzing a.pdf")

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var results []types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 3)
	assert.Equal(t, "a.pdf", results[0].DocumentName)
	assert.Equal(t, types.StatusCompleted, results[0].Status)
	assert.Equal(t, types.StatusFailed, results[1].Status)
	assert.Equal(t, types.StatusError, results[2].Status)
	assert.Contains(t, results[2].Error, "panic")
}

func TestAnalyzeAllMissingDirectory(t *testing.T) {
	a := New(nil, nil, types.AnalysisConfig{VisureDir: "/does/not/exist"})
	_, err := a.AnalyzeAll(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
}
