// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the visura-engine CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/emazzini/visura-engine/internal/config"
	"github.com/emazzini/visura-engine/internal/ollama"
	"github.com/emazzini/visura-engine/internal/secrets"
	"github.com/emazzini/visura-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the visura-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "visura-engine",
	Short: "Company intelligence pipeline for Italian chamber documents",
	Long: `visura-engine builds a company intelligence base from Italian chamber of
commerce documents (visure) and company websites. Each pipeline stage is a
subcommand: analyze extracts certifications and company data from chamber
PDFs, intel gathers and classifies website content, unify merges the
artifacts, store indexes them for full-text search, and chat answers
questions over the indexed companies.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; it feeds AutomaticEnv overrides.
		godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./visura-engine.yaml)")
	rootCmd.PersistentFlags().Bool("no-model", false, "disable model calls; deterministic extraction only")
}

func initConfig() {
	viper.SetConfigName("visura-engine")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "visura-engine"))
	}

	viper.SetEnvPrefix("VISURA_ENGINE")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

// pipelineConfig loads the YAML config and applies environment and
// secret overrides to the model settings.
func pipelineConfig(cmd *cobra.Command) (*types.PipelineConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFile
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	for _, model := range []*types.ModelConfig{
		&cfg.Analysis.Model, &cfg.Intelligence.Model, &cfg.Chat.Model,
	} {
		if v := viper.GetString("model_endpoint"); v != "" {
			model.Endpoint = v
		}
		if v := viper.GetString("model_name"); v != "" {
			model.Model = v
		}
		if model.Token == "" {
			model.Token = viper.GetString("model_token")
		}
		if model.Token == "" {
			model.Token = loadedSecrets["ollama-token"]
		}
	}
	return cfg, nil
}

// generator builds the model client, or nil when --no-model is set or
// no endpoint is configured.
func generator(cmd *cobra.Command, mc types.ModelConfig) ollama.Generator {
	if noModel, _ := cmd.Flags().GetBool("no-model"); noModel {
		return nil
	}
	if mc.Endpoint == "" {
		return nil
	}
	return ollama.NewClient(mc)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
