// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the pipeline configuration from YAML and fills
// in defaults, so every stage sees a fully populated config.
// Implements: docs/ARCHITECTURE § Configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/emazzini/visura-engine/pkg/types"
)

// DefaultFile is the config file looked for when none is given.
const DefaultFile = "visura-engine.yaml"

// Default returns the built-in pipeline configuration.
func Default() *types.PipelineConfig {
	model := types.ModelConfig{
		Endpoint:    "http://ollama.lan:11434/api/generate",
		Model:       "gemma3:12b",
		Stream:      false,
		Temperature: 0.3,
		TopP:        0.9,
		Timeout:     60 * time.Second,
	}

	return &types.PipelineConfig{
		Analysis: types.AnalysisConfig{
			Model:             model,
			VisureDir:         "visure",
			CompaniesFile:     "companies_detailed.csv",
			OutputFile:        "chamber_analysis.json",
			MaxContentLength:  4000,
			FirstPageMaxLines: 150,
		},
		Intelligence: types.IntelligenceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: "visura-engine/0.1",
			},
			Model:           model,
			InputFile:       "company_websites.csv",
			OutputFile:      "company_intelligence.json",
			TaxonomyFile:    "industry_classification.json",
			MaxPagesPerSite: 5,
			RequestDelay:    2 * time.Second,
			CompanyDelay:    3 * time.Second,
		},
		Unify: types.UnifyConfig{
			CompaniesFile:    "companies_detailed.csv",
			WebsitesFile:     "company_websites.csv",
			IntelligenceFile: "company_intelligence.json",
			ChamberFile:      "chamber_analysis.json",
			OutputFile:       "companies_unified.json",
		},
		Store: types.StoreConfig{
			DataDir:    "data",
			MaxResults: 20,
		},
		Chat: types.ChatConfig{
			Model:            model,
			MaxContextLength: 6000,
			HistoryLimit:     10,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// not an error when path is DefaultFile; explicit paths must exist.
func Load(path string) (*types.PipelineConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultFile {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults refills zero values that a partial YAML file cleared.
func applyDefaults(cfg *types.PipelineConfig) {
	def := Default()

	fillModel(&cfg.Analysis.Model, &def.Analysis.Model)
	fillModel(&cfg.Intelligence.Model, &def.Intelligence.Model)
	fillModel(&cfg.Chat.Model, &def.Chat.Model)

	fillString(&cfg.Analysis.VisureDir, def.Analysis.VisureDir)
	fillString(&cfg.Analysis.CompaniesFile, def.Analysis.CompaniesFile)
	fillString(&cfg.Analysis.OutputFile, def.Analysis.OutputFile)
	fillInt(&cfg.Analysis.MaxContentLength, def.Analysis.MaxContentLength)
	fillInt(&cfg.Analysis.FirstPageMaxLines, def.Analysis.FirstPageMaxLines)

	fillDuration(&cfg.Intelligence.Timeout, def.Intelligence.Timeout)
	fillString(&cfg.Intelligence.UserAgent, def.Intelligence.UserAgent)
	fillString(&cfg.Intelligence.InputFile, def.Intelligence.InputFile)
	fillString(&cfg.Intelligence.OutputFile, def.Intelligence.OutputFile)
	fillString(&cfg.Intelligence.TaxonomyFile, def.Intelligence.TaxonomyFile)
	fillInt(&cfg.Intelligence.MaxPagesPerSite, def.Intelligence.MaxPagesPerSite)
	fillDuration(&cfg.Intelligence.RequestDelay, def.Intelligence.RequestDelay)
	fillDuration(&cfg.Intelligence.CompanyDelay, def.Intelligence.CompanyDelay)

	fillString(&cfg.Unify.CompaniesFile, def.Unify.CompaniesFile)
	fillString(&cfg.Unify.WebsitesFile, def.Unify.WebsitesFile)
	fillString(&cfg.Unify.IntelligenceFile, def.Unify.IntelligenceFile)
	fillString(&cfg.Unify.ChamberFile, def.Unify.ChamberFile)
	fillString(&cfg.Unify.OutputFile, def.Unify.OutputFile)

	fillString(&cfg.Store.DataDir, def.Store.DataDir)
	fillInt(&cfg.Store.MaxResults, def.Store.MaxResults)

	fillInt(&cfg.Chat.MaxContextLength, def.Chat.MaxContextLength)
	fillInt(&cfg.Chat.HistoryLimit, def.Chat.HistoryLimit)
}

func fillModel(m, def *types.ModelConfig) {
	fillString(&m.Endpoint, def.Endpoint)
	fillString(&m.Model, def.Model)
	if m.Temperature == 0 {
		m.Temperature = def.Temperature
	}
	if m.TopP == 0 {
		m.TopP = def.TopP
	}
	fillDuration(&m.Timeout, def.Timeout)
}

func fillString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func fillInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

func fillDuration(v *time.Duration, def time.Duration) {
	if *v <= 0 {
		*v = def
	}
}
