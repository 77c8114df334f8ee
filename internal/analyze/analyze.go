// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze runs the chamber document pipeline: text extraction,
// company matching, deterministic certification extraction, and the
// model-backed structured reading. Every input document yields exactly
// one result; extraction misses and model failures degrade fields
// instead of failing the document.
// Implements: docs/ARCHITECTURE § Document Analysis.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/emazzini/visura-engine/internal/certifications"
	"github.com/emazzini/visura-engine/internal/ollama"
	"github.com/emazzini/visura-engine/internal/pdftext"
	"github.com/emazzini/visura-engine/internal/registry"
	"github.com/emazzini/visura-engine/internal/textutil"
	"github.com/emazzini/visura-engine/pkg/types"
)

const (
	defaultMaxContentLength = 4000

	// timestampLayout matches the artifact format of every stage.
	timestampLayout = "2006-01-02 15:04:05"
)

// TextExtractor turns a document path into plain text. The default is
// the PDF extractor; tests substitute plain readers.
type TextExtractor func(path string) (string, error)

// Analyzer holds the collaborators for one analysis run.
type Analyzer struct {
	Registry    *registry.Registry
	Model       ollama.Generator // nil disables the model path
	ExtractText TextExtractor
	// Validate runs before extraction; a validation error fails the
	// document. Nil skips the check.
	Validate func(path string) error
	Config   types.AnalysisConfig
}

// New builds an analyzer wired to the PDF extractor and validator.
func New(reg *registry.Registry, model ollama.Generator, cfg types.AnalysisConfig) *Analyzer {
	return &Analyzer{
		Registry:    reg,
		Model:       model,
		ExtractText: pdftext.Extract,
		Validate:    pdftext.Validate,
		Config:      cfg,
	}
}

// BatchSummary holds counts from a batch analysis run.
type BatchSummary struct {
	Completed int
	Failed    int
	Errored   int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Completed + s.Failed + s.Errored
}

// HasFailures reports whether any documents failed or errored.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0 || s.Errored > 0
}

// AnalyzeAll processes every PDF in the configured directory in name
// order, writes the results artifact, and reports progress to w. A
// document that panics or errors becomes an error-status entry; the
// batch always runs to the end.
func (a *Analyzer) AnalyzeAll(ctx context.Context, w io.Writer) (BatchSummary, error) {
	entries, err := os.ReadDir(a.Config.VisureDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading documents directory %s: %w", a.Config.VisureDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(a.Config.VisureDir, entry.Name()))
	}
	sort.Strings(paths)

	var summary BatchSummary
	results := make([]*types.AnalysisResult, 0, len(paths))

	for _, path := range paths {
		name := filepath.Base(path)
		fmt.Fprintf(w, "analyzing %s\n", name)

		result := a.analyzeSafely(ctx, path)
		results = append(results, result)

		switch result.Status {
		case types.StatusCompleted:
			fmt.Fprintf(w, "completed %s (%s, %d direct certifications)\n",
				name, result.CompanyName, directCount(result))
			summary.Completed++
		case types.StatusFailed:
			fmt.Fprintf(w, "failed  %s: %s\n", name, result.Error)
			summary.Failed++
		default:
			fmt.Fprintf(w, "error   %s: %s\n", name, result.Error)
			summary.Errored++
		}
	}

	if err := writeResults(a.Config.OutputFile, results); err != nil {
		return summary, err
	}
	return summary, nil
}

// analyzeSafely converts a per-document panic into an error-status
// result so one corrupt PDF cannot take down the batch.
func (a *Analyzer) analyzeSafely(ctx context.Context, path string) (result *types.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &types.AnalysisResult{
				DocumentName: filepath.Base(path),
				Status:       types.StatusError,
				Error:        fmt.Sprintf("panic: %v", r),
				Timestamp:    timestamp(),
			}
		}
	}()
	return a.AnalyzeDocument(ctx, path)
}

// AnalyzeDocument analyzes one chamber document. A structurally corrupt
// PDF fails validation and becomes a failed-status result. The returned
// result always carries the document name and a status; it is never nil.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, path string) *types.AnalysisResult {
	name := filepath.Base(path)

	if a.Validate != nil {
		if err := a.Validate(path); err != nil {
			return &types.AnalysisResult{
				DocumentName: name,
				Status:       types.StatusFailed,
				Error:        err.Error(),
				Timestamp:    timestamp(),
			}
		}
	}

	raw, err := a.ExtractText(path)
	if err != nil || strings.TrimSpace(raw) == "" {
		msg := "could not extract text from document"
		if err != nil {
			msg = fmt.Sprintf("extracting text: %v", err)
		}
		return &types.AnalysisResult{
			DocumentName: name,
			Status:       types.StatusFailed,
			Error:        msg,
			Timestamp:    timestamp(),
		}
	}

	// Line-preserving cleanup feeds the windowed extractors; the flat
	// form feeds the model.
	lineText := textutil.NormalizeLines(raw)
	flat := textutil.Normalize(raw)

	matched := a.matchCompany(lineText)
	companyName := types.UnknownCompany
	if matched != nil {
		companyName = matched.CompanyName
	}

	sections := textutil.ExtractSections(lineText)
	sections["full_text"] = flat
	processed := 0
	for _, section := range sections {
		processed += len(section)
	}

	result := &types.AnalysisResult{
		DocumentName:     name,
		CompanyName:      companyName,
		MatchedCompany:   matched,
		Status:           types.StatusCompleted,
		DirectExtraction: certifications.Extract(lineText),
		DocumentLength:   len(raw),
		ProcessedLength:  processed,
		Timestamp:        timestamp(),
	}

	result.AIAnalysis = a.modelAnalysis(ctx, companyName, flat)
	return result
}

// matchCompany resolves the document's subject from first-page
// identifiers. Nil means no registry entry matched.
func (a *Analyzer) matchCompany(lineText string) *types.CompanyRecord {
	if a.Registry == nil {
		return nil
	}
	firstPage := registry.FirstPage(lineText, a.Config.FirstPageMaxLines)
	return a.Registry.Resolve(registry.ExtractIdentifiers(firstPage))
}

// modelAnalysis runs the structured model reading. Any failure, from
// transport to malformed JSON, yields nil: the deterministic extraction
// stands on its own.
func (a *Analyzer) modelAnalysis(ctx context.Context, companyName, content string) *types.DocumentAnalysis {
	if a.Model == nil {
		return nil
	}
	maxLen := a.Config.MaxContentLength
	if maxLen <= 0 {
		maxLen = defaultMaxContentLength
	}

	prompt := ollama.DocumentPrompt(companyName, content, maxLen)
	raw, err := a.Model.Generate(ctx, prompt)
	if err != nil {
		return nil
	}

	var analysis types.DocumentAnalysis
	if err := ollama.ParseObject(raw, &analysis); err != nil {
		return nil
	}
	return &analysis
}

func directCount(r *types.AnalysisResult) int {
	if r.DirectExtraction == nil {
		return 0
	}
	return r.DirectExtraction.Total()
}

func writeResults(path string, results []*types.AnalysisResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	return nil
}

func timestamp() string {
	return time.Now().Format(timestampLayout)
}
