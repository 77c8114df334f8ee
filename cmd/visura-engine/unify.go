// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emazzini/visura-engine/internal/unify"
)

var unifyCmd = &cobra.Command{
	Use:   "unify",
	Short: "Merge pipeline artifacts into one company file",
	Long: `Unify joins the registry CSV with the website, intelligence, and
chamber analysis artifacts into a single JSON file with one record per
company. Missing artifacts are skipped with a warning so partial pipeline
runs still produce output.`,
	RunE: runUnify,
}

func init() {
	unifyCmd.Flags().String("companies", "", "registry CSV (base record set)")
	unifyCmd.Flags().String("websites", "", "website discovery CSV")
	unifyCmd.Flags().String("intelligence", "", "intelligence JSON artifact")
	unifyCmd.Flags().String("chamber", "", "chamber analysis JSON artifact")
	unifyCmd.Flags().String("output", "", "output JSON file")

	rootCmd.AddCommand(unifyCmd)
}

func runUnify(cmd *cobra.Command, args []string) error {
	pc, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	cfg := pc.Unify

	if v, _ := cmd.Flags().GetString("companies"); v != "" {
		cfg.CompaniesFile = v
	}
	if v, _ := cmd.Flags().GetString("websites"); v != "" {
		cfg.WebsitesFile = v
	}
	if v, _ := cmd.Flags().GetString("intelligence"); v != "" {
		cfg.IntelligenceFile = v
	}
	if v, _ := cmd.Flags().GetString("chamber"); v != "" {
		cfg.ChamberFile = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputFile = v
	}

	summary, err := unify.Run(cfg, os.Stdout)
	if err != nil {
		return err
	}

	color.Green("unified %d companies into %s", summary.Total, cfg.OutputFile)
	return nil
}
