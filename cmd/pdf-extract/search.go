// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search extracted page text in the catalog",
	Long: `Search finds catalogued pages whose text contains the query
(case-insensitive) and prints the source document, page number, a snippet,
and the images extracted from that page.

Use --list to show the catalogued documents instead.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("source", "", "restrict results to one source document")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("list", false, "list catalogued documents")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	list, _ := cmd.Flags().GetBool("list")
	w := cmd.OutOrStdout()
	ctx := cmd.Context()

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	if list {
		docs, err := store.Documents(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(w, docs)
		}
		for _, d := range docs {
			fmt.Fprintf(w, "%s  %d pages  %d images  %s\n", d.Source, d.PageCount, d.ImageCount, d.OutputDir)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}

	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")
	hits, err := store.Search(ctx, catalog.SearchOptions{
		Query:      strings.Join(args, " "),
		Source:     source,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(w, hits)
	}
	return formatHits(w, hits)
}

func formatHits(w io.Writer, hits []catalog.Hit) error {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	for _, h := range hits {
		fmt.Fprintf(w, "%s  page %d\n  %s\n", h.Source, h.PageNumber, h.Snippet)
		for _, img := range h.Images {
			fmt.Fprintf(w, "  image: %s\n", img)
		}
	}
	fmt.Fprintf(w, "\n%d results\n", len(hits))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
