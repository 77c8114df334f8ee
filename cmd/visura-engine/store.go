// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emazzini/visura-engine/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Index unified companies and query the store",
	Long: `Store manages the SQLite company database. Use subcommands to index
the unified JSON artifact or to query companies with full-text search.`,
}

// --- index subcommand ---

var storeIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Ingest the unified company file into the store",
	Long: `Index reads the unified JSON artifact and loads it into the SQLite
database with FTS5 indexing. Re-indexing after a pipeline run replaces
existing records.`,
	RunE: runStoreIndex,
}

func runStoreIndex(cmd *cobra.Command, args []string) error {
	pc, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = pc.Unify.OutputFile
	}

	st, err := store.New(pc.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.Ingest(context.Background(), input, os.Stdout)
	if err != nil {
		return err
	}

	color.Green("indexed %d, updated %d", summary.Indexed, summary.Updated)
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var storeSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the company store with full-text search",
	Long: `Search runs an FTS5 full-text query over the indexed companies.
The query argument uses FTS5 syntax; combine it with --category to filter
by primary classification category.`,
	RunE: runStoreSearch,
}

func runStoreSearch(cmd *cobra.Command, args []string) error {
	pc, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.QueryOptions{
		Query:      strings.Join(args, " "),
		Category:   category,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --category")
	}

	st, err := store.New(pc.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []store.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-40s  %-12s  %-30s  %s\n",
		"Rank", "Company", "Tax code", "Category", "Website")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		name := r.CompanyName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		category := ""
		if r.Classification != nil {
			category = r.Classification.PrimaryCategory()
		}
		if len(category) > 30 {
			category = category[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-40s  %-12s  %-30s  %s\n",
			i+1, name, r.TaxCode, category, r.Website)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func init() {
	storeIndexCmd.Flags().String("input", "", "unified JSON file (default: unify output)")

	storeSearchCmd.Flags().String("category", "", "filter by primary classification category")
	storeSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeSearchCmd.Flags().Bool("json", false, "output results as JSON")

	storeCmd.AddCommand(storeIndexCmd)
	storeCmd.AddCommand(storeSearchCmd)

	rootCmd.AddCommand(storeCmd)
}
