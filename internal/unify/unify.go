// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package unify merges the pipeline artifacts into one company-centric
// JSON file. The registry CSV is the base: every registry company gets
// a unified record, enriched with whatever the other artifacts know
// about it. Missing artifact files degrade to warnings so partial
// pipeline runs still unify.
// Implements: docs/ARCHITECTURE § Artifact Unification.
package unify

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/emazzini/visura-engine/internal/registry"
	"github.com/emazzini/visura-engine/pkg/types"
)

// Summary reports data coverage across the unified records.
type Summary struct {
	Total             int
	WithWebsite       int
	WithIntelligence  int
	WithCertification int
}

// Run merges all configured artifacts, writes the unified JSON file,
// and returns the coverage summary. Progress and warnings go to w.
func Run(cfg types.UnifyConfig, w io.Writer) (Summary, error) {
	companies, err := Merge(cfg, w)
	if err != nil {
		return Summary{}, err
	}

	data, err := json.MarshalIndent(companies, "", "  ")
	if err != nil {
		return Summary{}, fmt.Errorf("encoding unified data: %w", err)
	}
	if err := os.WriteFile(cfg.OutputFile, data, 0o644); err != nil {
		return Summary{}, fmt.Errorf("writing unified data %s: %w", cfg.OutputFile, err)
	}

	summary := summarize(companies)
	fmt.Fprintf(w, "unified %d companies (%d with website, %d with intelligence, %d with certifications)\n",
		summary.Total, summary.WithWebsite, summary.WithIntelligence, summary.WithCertification)
	return summary, nil
}

// Merge builds the unified records without writing them. Records are
// joined by tax code, falling back to the uppercased company name.
func Merge(cfg types.UnifyConfig, w io.Writer) ([]*types.UnifiedCompany, error) {
	reg, err := registry.LoadCSV(cfg.CompaniesFile)
	if err != nil {
		return nil, fmt.Errorf("loading companies: %w", err)
	}

	websites, err := loadWebsites(cfg.WebsitesFile)
	warnIfMissing(w, cfg.WebsitesFile, err)

	var reports []*types.IntelReport
	err = loadJSON(cfg.IntelligenceFile, &reports)
	warnIfMissing(w, cfg.IntelligenceFile, err)

	var analyses []*types.AnalysisResult
	err = loadJSON(cfg.ChamberFile, &analyses)
	warnIfMissing(w, cfg.ChamberFile, err)

	reportsByName := make(map[string]*types.IntelReport, len(reports))
	for _, report := range reports {
		reportsByName[strings.ToUpper(report.CompanyName)] = report
	}

	analysesByKey := make(map[string]*types.AnalysisResult, len(analyses))
	for _, analysis := range analyses {
		if analysis.MatchedCompany != nil && analysis.MatchedCompany.TaxCode != "" {
			analysesByKey[analysis.MatchedCompany.TaxCode] = analysis
		}
		if analysis.CompanyName != "" && analysis.CompanyName != types.UnknownCompany {
			key := strings.ToUpper(analysis.CompanyName)
			if _, taken := analysesByKey[key]; !taken {
				analysesByKey[key] = analysis
			}
		}
	}

	companies := make([]*types.UnifiedCompany, 0, reg.Len())
	for _, rec := range reg.Records() {
		unified := &types.UnifiedCompany{CompanyRecord: *rec}
		nameKey := strings.ToUpper(rec.CompanyName)

		if unified.Website == "" {
			unified.Website = websites[nameKey]
		}

		if report, ok := reportsByName[nameKey]; ok {
			unified.Intelligence = report.Intelligence
			unified.Classification = report.Classification
		}

		analysis := analysesByKey[rec.TaxCode]
		if analysis == nil {
			analysis = analysesByKey[nameKey]
		}
		if analysis != nil {
			unified.Certifications = analysis.DirectExtraction
			unified.ChamberAIData = analysis.AIAnalysis
			unified.ChamberDocument = analysis.DocumentName
		}

		companies = append(companies, unified)
	}
	return companies, nil
}

// loadWebsites reads the website discovery CSV into a name -> URL map.
func loadWebsites(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing websites %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	nameIdx, urlIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "company_name":
			nameIdx = i
		case "official_website", "website_url", "website":
			if urlIdx < 0 {
				urlIdx = i
			}
		}
	}
	if nameIdx < 0 || urlIdx < 0 {
		return nil, fmt.Errorf("websites %s: missing company_name or website column", path)
	}

	websites := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		if nameIdx >= len(row) || urlIdx >= len(row) {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(row[nameIdx]))
		url := strings.TrimSpace(row[urlIdx])
		if name == "" || url == "" {
			continue
		}
		websites[name] = url
	}
	return websites, nil
}

func loadJSON(path string, v any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func warnIfMissing(w io.Writer, path string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "warning: %s not found, skipping\n", path)
		return
	}
	fmt.Fprintf(w, "warning: %v\n", err)
}

func summarize(companies []*types.UnifiedCompany) Summary {
	s := Summary{Total: len(companies)}
	for _, c := range companies {
		if c.Website != "" {
			s.WithWebsite++
		}
		if c.Intelligence != nil {
			s.WithIntelligence++
		}
		if c.Certifications != nil && c.Certifications.Total() > 0 {
			s.WithCertification++
		}
	}
	return s
}
