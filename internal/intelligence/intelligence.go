// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intelligence runs the website intelligence stage: page
// acquisition, pattern extraction, and industry classification with a
// model-first, deterministic-fallback strategy. One report is emitted
// per input company regardless of fetch or model failures.
// Implements: docs/ARCHITECTURE § Website Intelligence.
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emazzini/visura-engine/internal/classify"
	"github.com/emazzini/visura-engine/internal/intel"
	"github.com/emazzini/visura-engine/internal/ollama"
	"github.com/emazzini/visura-engine/internal/registry"
	"github.com/emazzini/visura-engine/internal/webtext"
	"github.com/emazzini/visura-engine/pkg/types"
)

const (
	defaultMaxPages     = 5
	defaultRequestDelay = 2 * time.Second
	defaultCompanyDelay = 3 * time.Second

	// classifyContentCap limits the characters handed to the model.
	classifyContentCap = 4000

	timestampLayout = "2006-01-02 15:04:05"
)

// ClassifiedBy values recorded on reports.
const (
	ClassifiedByModel  = "model"
	ClassifiedByDirect = "direct"
)

// noWebsiteValues are URL column entries that mean "no website".
var noWebsiteValues = []string{"", "n/a", "none", "null"}

// Engine runs the intelligence pipeline for a set of companies.
type Engine struct {
	Fetcher  *webtext.Fetcher
	Model    ollama.Generator // nil disables the model path
	Taxonomy types.Taxonomy
	Config   types.IntelligenceConfig

	// Sleep is replaceable for tests; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// New builds an engine with defaults filled in.
func New(model ollama.Generator, taxonomy types.Taxonomy, cfg types.IntelligenceConfig) *Engine {
	return &Engine{
		Fetcher:  webtext.NewFetcher(cfg.HTTPConfig),
		Model:    model,
		Taxonomy: taxonomy,
		Config:   cfg,
		Sleep:    time.Sleep,
	}
}

// BatchSummary holds counts from a batch intelligence run.
type BatchSummary struct {
	Completed int
	NoWebsite int
	Errored   int
}

// Total returns the number of companies processed.
func (s BatchSummary) Total() int {
	return s.Completed + s.NoWebsite + s.Errored
}

// HasFailures reports whether any company errored. A missing website is
// an expected outcome, not a failure.
func (s BatchSummary) HasFailures() bool { return s.Errored > 0 }

// AnalyzeAll processes every company from the input CSV, writes the
// intelligence artifact, and reports progress to w. Companies without a
// website get a no_website report; a company that panics gets an
// error report. The batch always runs to the end.
func (e *Engine) AnalyzeAll(ctx context.Context, w io.Writer) (BatchSummary, error) {
	reg, err := registry.LoadCSV(e.Config.InputFile)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("loading companies: %w", err)
	}
	companies := reg.Records()

	var summary BatchSummary
	reports := make([]*types.IntelReport, 0, len(companies))

	for i, company := range companies {
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(companies), company.CompanyName)

		report := e.analyzeSafely(ctx, company)
		reports = append(reports, report)

		switch report.Status {
		case types.StatusCompleted:
			fmt.Fprintf(w, "completed %s (%d pages, classified by %s)\n",
				company.CompanyName, report.PagesAnalyzed, report.ClassifiedBy)
			summary.Completed++
		case types.StatusNoWebsite:
			fmt.Fprintf(w, "skipped %s: no website\n", company.CompanyName)
			summary.NoWebsite++
		default:
			fmt.Fprintf(w, "error   %s: %s\n", company.CompanyName, report.Error)
			summary.Errored++
		}

		if i < len(companies)-1 {
			e.sleep(orDefault(e.Config.CompanyDelay, defaultCompanyDelay))
		}
	}

	if err := writeReports(e.Config.OutputFile, reports); err != nil {
		return summary, err
	}
	return summary, nil
}

func (e *Engine) analyzeSafely(ctx context.Context, company *types.CompanyRecord) (report *types.IntelReport) {
	defer func() {
		if r := recover(); r != nil {
			report = &types.IntelReport{
				CompanyName: company.CompanyName,
				WebsiteURL:  company.Website,
				Status:      types.StatusError,
				Error:       fmt.Sprintf("panic: %v", r),
				Timestamp:   timestamp(),
			}
		}
	}()
	return e.AnalyzeCompany(ctx, company)
}

// AnalyzeCompany builds the intelligence report for one company. The
// returned report always carries the company name and a status.
func (e *Engine) AnalyzeCompany(ctx context.Context, company *types.CompanyRecord) *types.IntelReport {
	report := &types.IntelReport{
		CompanyName: company.CompanyName,
		WebsiteURL:  company.Website,
		Timestamp:   timestamp(),
	}

	if isNoWebsite(company.Website) {
		report.Status = types.StatusNoWebsite
		return report
	}

	web := e.fetchIntelligence(ctx, company.Website)
	report.Intelligence = web
	report.PagesAnalyzed = len(web.AnalyzedPages)
	report.Status = types.StatusCompleted

	if web.Content == "" {
		report.Error = "no website content extracted"
		return report
	}

	report.Classification, report.ClassifiedBy = e.classify(ctx, company.CompanyName, web.Content)
	return report
}

// fetchIntelligence walks the candidate pages and accumulates extracted
// details. Per-page failures skip the page; the walk never fails.
func (e *Engine) fetchIntelligence(ctx context.Context, websiteURL string) *types.WebIntelligence {
	maxPages := e.Config.MaxPagesPerSite
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	pages := webtext.CandidatePages(websiteURL, e.Config.PagePaths, maxPages)

	web := &types.WebIntelligence{}
	for i, page := range pages {
		text, err := e.Fetcher.FetchPage(ctx, page)
		if err != nil {
			continue
		}
		web.AnalyzedPages = append(web.AnalyzedPages, page)
		web.Content += fmt.Sprintf("\n--- %s ---\n%s\n", page, text)
		intel.ExtractPage(text, web)

		if i < len(pages)-1 {
			e.sleep(orDefault(e.Config.RequestDelay, defaultRequestDelay))
		}
	}
	intel.Cleanup(web)
	return web
}

// classify tries the model first and falls back to the deterministic
// classifier when the model is unavailable, returns unusable JSON, or
// reports zero confidence.
func (e *Engine) classify(ctx context.Context, companyName, content string) (*types.Classification, string) {
	if c := e.modelClassification(ctx, companyName, content); c != nil && c.OverallConfidence > 0 {
		return c, ClassifiedByModel
	}
	return classify.Classify(content, e.Taxonomy), ClassifiedByDirect
}

func (e *Engine) modelClassification(ctx context.Context, companyName, content string) *types.Classification {
	if e.Model == nil {
		return nil
	}
	prompt := ollama.ClassificationPrompt(companyName, content, e.Taxonomy, classifyContentCap)
	raw, err := e.Model.Generate(ctx, prompt)
	if err != nil {
		return nil
	}

	var payload modelPayload
	if err := ollama.ParseObject(raw, &payload); err != nil {
		return nil
	}
	return payload.normalize()
}

func (e *Engine) sleep(d time.Duration) {
	if e.Sleep != nil && d > 0 {
		e.Sleep(d)
	}
}

func isNoWebsite(url string) bool {
	url = strings.ToLower(strings.TrimSpace(url))
	for _, v := range noWebsiteValues {
		if url == v {
			return true
		}
	}
	return false
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func writeReports(path string, reports []*types.IntelReport) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing reports %s: %w", path, err)
	}
	return nil
}

func timestamp() string {
	return time.Now().Format(timestampLayout)
}
