// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emazzini/visura-engine/internal/classify"
	"github.com/emazzini/visura-engine/internal/intelligence"
	"github.com/emazzini/visura-engine/pkg/types"
)

var intelCmd = &cobra.Command{
	Use:   "intel",
	Short: "Gather and classify company website intelligence",
	Long: `Intel visits each company's website, extracts contacts and business
details from a fixed set of candidate pages, and classifies the company
against the industry taxonomy. Classification prefers the model and falls
back to deterministic keyword scoring when the model is unavailable.`,
	RunE: runIntel,
}

func init() {
	intelCmd.Flags().String("input", "", "company CSV with website URLs")
	intelCmd.Flags().String("output", "", "output JSON file")
	intelCmd.Flags().String("taxonomy", "", "industry taxonomy JSON file")
	intelCmd.Flags().Int("max-pages", 0, "maximum pages fetched per site")

	rootCmd.AddCommand(intelCmd)
}

func runIntel(cmd *cobra.Command, args []string) error {
	pc, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	cfg := pc.Intelligence

	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.InputFile = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputFile = v
	}
	if v, _ := cmd.Flags().GetString("taxonomy"); v != "" {
		cfg.TaxonomyFile = v
	}
	if v, _ := cmd.Flags().GetInt("max-pages"); v > 0 {
		cfg.MaxPagesPerSite = v
	}

	taxonomy, err := classify.LoadTaxonomy(cfg.TaxonomyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; continuing with empty taxonomy\n", err)
		taxonomy = types.Taxonomy{}
	}

	engine := intelligence.New(generator(cmd, cfg.Model), taxonomy, cfg)
	summary, err := engine.AnalyzeAll(context.Background(), os.Stdout)
	if err != nil {
		return err
	}

	color.Green("analyzed %d/%d companies (%d without website), results in %s",
		summary.Completed, summary.Total(), summary.NoWebsite, cfg.OutputFile)
	if summary.HasFailures() {
		color.Red("%d company analyses errored", summary.Errored)
		return fmt.Errorf("%d company analyses errored", summary.Errored)
	}
	return nil
}
