// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emazzini/visura-engine/internal/analyze"
	"github.com/emazzini/visura-engine/internal/registry"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze chamber of commerce documents",
	Long: `Analyze extracts text from chamber of commerce PDFs, matches each
document to a registry company, extracts certifications deterministically,
and asks the model for a structured reading. Results are written as a JSON
array with one record per document.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("visure-dir", "", "directory of chamber PDF documents")
	analyzeCmd.Flags().String("companies", "", "registry CSV for company matching")
	analyzeCmd.Flags().String("output", "", "output JSON file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	pc, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	cfg := pc.Analysis

	if v, _ := cmd.Flags().GetString("visure-dir"); v != "" {
		cfg.VisureDir = v
	}
	if v, _ := cmd.Flags().GetString("companies"); v != "" {
		cfg.CompaniesFile = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputFile = v
	}

	reg, err := registry.LoadCSV(cfg.CompaniesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; continuing without company matching\n", err)
		reg = registry.New()
	} else {
		fmt.Fprintf(os.Stderr, "loaded %d companies for matching\n", reg.Len())
	}

	a := analyze.New(reg, generator(cmd, cfg.Model), cfg)
	summary, err := a.AnalyzeAll(context.Background(), os.Stdout)
	if err != nil {
		return err
	}

	color.Green("analyzed %d/%d documents, results in %s",
		summary.Completed, summary.Total(), cfg.OutputFile)
	if summary.HasFailures() {
		color.Red("%d document(s) failed", summary.Failed+summary.Errored)
		return fmt.Errorf("%d document(s) failed analysis", summary.Failed+summary.Errored)
	}
	return nil
}
