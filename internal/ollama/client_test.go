// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emazzini/visura-engine/internal/httputil"
	"github.com/emazzini/visura-engine/pkg/types"
)

func TestMain(m *testing.M) {
	// Override backoff to avoid real sleeps in retry tests.
	httputil.RetryBaseDelay = time.Millisecond
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"response": `{"ok": true}`})
	}))
	defer srv.Close()

	client := NewClient(types.ModelConfig{
		Endpoint:    srv.URL,
		Model:       "gemma3:12b",
		Temperature: 0.3,
		TopP:        0.9,
	})

	resp, err := client.Generate(context.Background(), "analizza questo")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, resp)

	assert.Equal(t, "gemma3:12b", got.Model)
	assert.Equal(t, "analizza questo", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.3, got.Options.Temperature)
	assert.Equal(t, 0.9, got.Options.TopP)
}

func TestGenerateSendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	client := NewClient(types.ModelConfig{Endpoint: srv.URL, Token: "sekrit"})
	_, err := client.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", auth)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(types.ModelConfig{Endpoint: srv.URL})
	_, err := client.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestGenerateUnreachable(t *testing.T) {
	client := NewClient(types.ModelConfig{Endpoint: "http://127.0.0.1:1/api/generate"})
	_, err := client.Generate(context.Background(), "p")
	assert.Error(t, err)
}
