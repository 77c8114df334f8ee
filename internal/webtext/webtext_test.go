// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webtext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emazzini/visura-engine/internal/httputil"
	"github.com/emazzini/visura-engine/pkg/types"
)

func init() {
	// Keep retry backoff out of test runtime.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.it", NormalizeURL("example.it"))
	assert.Equal(t, "https://example.it", NormalizeURL(" https://example.it/ "))
	assert.Equal(t, "http://example.it", NormalizeURL("http://example.it"))
	assert.Equal(t, "", NormalizeURL("  "))
}

func TestCandidatePages(t *testing.T) {
	pages := CandidatePages("example.it", nil, 3)
	assert.Equal(t, []string{
		"https://example.it",
		"https://example.it/about",
		"https://example.it/chi-siamo",
	}, pages)

	all := CandidatePages("example.it", nil, 0)
	assert.Len(t, all, len(DefaultPagePaths)+1)

	custom := CandidatePages("example.it", []string{"/team"}, 0)
	assert.Equal(t, []string{"https://example.it", "https://example.it/team"}, custom)

	assert.Nil(t, CandidatePages("", nil, 5))
}

func TestFetchPageConvertsHTML(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body><h1>Chi siamo</h1><p>Impianti <strong>elettrici</strong>.</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(types.HTTPConfig{UserAgent: "test-agent/1.0"})
	md, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "test-agent/1.0", ua)
	assert.Contains(t, md, "Chi siamo")
	assert.Contains(t, md, "**elettrici**")
}

func TestFetchPageRetriesTransientServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html><body><p>Servizi di manutenzione</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(types.HTTPConfig{})
	md, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Contains(t, md, "Servizi di manutenzione")
}

func TestFetchPageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcher(types.HTTPConfig{})
	_, err := f.FetchPage(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
