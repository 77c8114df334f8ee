// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webtext fetches company web pages and converts them to
// Markdown for the intelligence stage. Page discovery is a fixed list
// of candidate paths rather than link crawling; company sites are small
// and their informative pages sit at predictable URLs.
// Implements: docs/ARCHITECTURE § Website Acquisition.
package webtext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/emazzini/visura-engine/internal/httputil"
	"github.com/emazzini/visura-engine/pkg/types"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "visura-engine/0.1"

	// maxBodySize caps a page download at 10 MB.
	maxBodySize = 10 * 1024 * 1024

	// fetchMaxRetries bounds per-page retries on 429/5xx; a page that
	// stays down is skipped, not hammered.
	fetchMaxRetries = 2
)

// DefaultPagePaths are the candidate paths tried after the homepage, in
// order. Italian company sites use the Italian names, their English
// variants cover the rest.
var DefaultPagePaths = []string{
	"/about",
	"/chi-siamo",
	"/azienda",
	"/servizi",
	"/products",
	"/prodotti",
	"/contatti",
	"/contact",
}

// Fetcher downloads pages with a shared client and User-Agent.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFetcher builds a fetcher from config, filling in defaults.
func NewFetcher(cfg types.HTTPConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: ua,
	}
}

// NormalizeURL prepends https:// to scheme-less URLs and trims
// whitespace and trailing slashes.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return strings.TrimRight(u, "/")
}

// CandidatePages returns the homepage followed by base+path for each
// candidate path, capped at max (<=0 means all).
func CandidatePages(base string, paths []string, max int) []string {
	base = NormalizeURL(base)
	if base == "" {
		return nil
	}
	if paths == nil {
		paths = DefaultPagePaths
	}
	pages := make([]string, 0, len(paths)+1)
	pages = append(pages, base)
	for _, p := range paths {
		pages = append(pages, base+p)
	}
	if max > 0 && len(pages) > max {
		pages = pages[:max]
	}
	return pages
}

// FetchPage downloads one page and returns its content as Markdown.
// Rate limits and transient server errors are retried a couple of
// times; remaining non-200 responses are errors, and callers treat
// per-page errors as a skipped page, not a failed company.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.UserAgent)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, fetchMaxRetries)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	markdown, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return "", fmt.Errorf("converting %s to markdown: %w", url, err)
	}
	return markdown, nil
}
