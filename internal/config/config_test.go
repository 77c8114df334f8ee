// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gemma3:12b", cfg.Analysis.Model.Model)
	assert.Equal(t, 4000, cfg.Analysis.MaxContentLength)
	assert.Equal(t, "company_intelligence.json", cfg.Intelligence.OutputFile)
	assert.Equal(t, 3*time.Second, cfg.Intelligence.CompanyDelay)
	assert.Equal(t, "companies_unified.json", cfg.Unify.OutputFile)
	assert.Equal(t, 20, cfg.Store.MaxResults)
	assert.Equal(t, 6000, cfg.Chat.MaxContextLength)
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load(DefaultFile)
	require.NoError(t, err)
	assert.Equal(t, "visure", cfg.Analysis.VisureDir)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
analysis:
  visure_dir: documents/visure
  model:
    model: llama3:8b
store:
  data_dir: /var/lib/visura
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "documents/visure", cfg.Analysis.VisureDir)
	assert.Equal(t, "llama3:8b", cfg.Analysis.Model.Model)
	assert.Equal(t, "/var/lib/visura", cfg.Store.DataDir)

	// Untouched values keep defaults.
	assert.Equal(t, "http://ollama.lan:11434/api/generate", cfg.Analysis.Model.Endpoint)
	assert.Equal(t, 4000, cfg.Analysis.MaxContentLength)
	assert.Equal(t, 20, cfg.Store.MaxResults)
	assert.Equal(t, "gemma3:12b", cfg.Chat.Model.Model)
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
