// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ollama is the client for the local model-inference endpoint.
// The endpoint speaks the Ollama generate protocol; responses are free
// text with an embedded JSON object the callers carve out and repair.
// Implements: docs/ARCHITECTURE § Model Inference.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emazzini/visura-engine/internal/httputil"
	"github.com/emazzini/visura-engine/pkg/types"
)

// Generator abstracts the model endpoint so tests can supply a mock.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls the generate endpoint over HTTP.
type Client struct {
	Endpoint    string
	Model       string
	Stream      bool
	Temperature float64
	TopP        float64
	Token       string
	HTTPClient  *http.Client
}

// NewClient builds a client from config, applying the 60 s default
// timeout when none is set.
func NewClient(cfg types.ModelConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		Endpoint:    cfg.Endpoint,
		Model:       cfg.Model,
		Stream:      cfg.Stream,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		Token:       cfg.Token,
		HTTPClient:  &http.Client{Timeout: timeout},
	}
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p,omitempty"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends one prompt and returns the raw response text. Rate
// limiting is retried with backoff; any other non-200 status is an
// error carrying the response body.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Stream: c.Stream,
		Options: generateOptions{
			Temperature: c.Temperature,
			TopP:        c.TopP,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("calling model endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}
	return gResp.Response, nil
}
