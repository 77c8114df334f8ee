// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "visura-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ModelConfig holds settings for the model-inference endpoint shared by
// the stages that call it. The endpoint accepts
// {model, prompt, stream, options:{temperature, top_p?}} and returns
// {response: <text possibly containing embedded JSON>}.
type ModelConfig struct {
	// Endpoint is the generate URL (e.g. "http://ollama.lan:11434/api/generate").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the model identifier (e.g. "gemma3:12b").
	Model string `json:"model" yaml:"model"`

	// Stream requests a streaming response; the pipeline always sets false.
	Stream bool `json:"stream" yaml:"stream"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// TopP is the nucleus sampling parameter; omitted from the request
	// when zero.
	TopP float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`

	// Timeout is the per-request timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Token is an optional bearer token for authenticated endpoints.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// AnalysisConfig holds settings for the chamber document analysis stage.
type AnalysisConfig struct {
	Model ModelConfig `json:"model" yaml:"model"`

	// VisureDir is the directory of chamber PDF documents.
	VisureDir string `json:"visure_dir" yaml:"visure_dir"`

	// CompaniesFile is the registry CSV used for company matching.
	CompaniesFile string `json:"companies_file" yaml:"companies_file"`

	// OutputFile is the JSON artifact path (default "chamber_analysis.json").
	OutputFile string `json:"output_file" yaml:"output_file"`

	// MaxContentLength caps the characters handed to the model (default 4000).
	MaxContentLength int `json:"max_content_length" yaml:"max_content_length"`

	// FirstPageMaxLines caps the first-page identifier window (default 150).
	// Registry documents repeat identifiers on every page; only the first
	// page's identifiers name the subject company.
	FirstPageMaxLines int `json:"first_page_max_lines" yaml:"first_page_max_lines"`
}

// IntelligenceConfig holds settings for the website intelligence stage.
type IntelligenceConfig struct {
	HTTPConfig `yaml:",inline"`

	Model ModelConfig `json:"model" yaml:"model"`

	// InputFile is the company CSV with website URLs.
	InputFile string `json:"input_file" yaml:"input_file"`

	// OutputFile is the JSON artifact path (default "company_intelligence.json").
	OutputFile string `json:"output_file" yaml:"output_file"`

	// TaxonomyFile is the category → subcategories JSON file.
	TaxonomyFile string `json:"taxonomy_file" yaml:"taxonomy_file"`

	// MaxPagesPerSite caps the pages fetched per company (default 5).
	MaxPagesPerSite int `json:"max_pages_per_site" yaml:"max_pages_per_site"`

	// PagePaths lists candidate page paths tried after the homepage.
	PagePaths []string `json:"page_paths" yaml:"page_paths"`

	// RequestDelay is the delay between page fetches (default 2s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// CompanyDelay is the delay between companies (default 3s).
	CompanyDelay time.Duration `json:"company_delay" yaml:"company_delay"`
}

// UnifyConfig holds the artifact paths merged by the unify stage.
type UnifyConfig struct {
	CompaniesFile    string `json:"companies_file" yaml:"companies_file"`
	WebsitesFile     string `json:"websites_file" yaml:"websites_file"`
	IntelligenceFile string `json:"intelligence_file" yaml:"intelligence_file"`
	ChamberFile      string `json:"chamber_file" yaml:"chamber_file"`

	// OutputFile is the unified JSON path (default "companies_unified.json").
	OutputFile string `json:"output_file" yaml:"output_file"`
}

// StoreConfig holds settings for the company store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ChatConfig holds settings for the conversational interface.
type ChatConfig struct {
	Model ModelConfig `json:"model" yaml:"model"`

	// MaxContextLength caps the characters of store context in the prompt
	// (default 6000).
	MaxContextLength int `json:"max_context_length" yaml:"max_context_length"`

	// HistoryLimit caps the retained conversation turns (default 10).
	HistoryLimit int `json:"history_limit" yaml:"history_limit"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Analysis     AnalysisConfig     `json:"analysis" yaml:"analysis"`
	Intelligence IntelligenceConfig `json:"intelligence" yaml:"intelligence"`
	Unify        UnifyConfig        `json:"unify" yaml:"unify"`
	Store        StoreConfig        `json:"store" yaml:"store"`
	Chat         ChatConfig         `json:"chat" yaml:"chat"`
}
