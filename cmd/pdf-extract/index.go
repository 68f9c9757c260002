// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/extract"
)

var indexCmd = &cobra.Command{
	Use:   "index [manifest]",
	Short: "Ingest an extraction manifest into the catalog",
	Long: `Index reads an extracted_metadata.json written by a previous run and
stores its pages and images in the SQLite catalog. Re-indexing the same
source document replaces its earlier entry.

Without an argument it reads the manifest in the configured output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()

	manifest := filepath.Join(cfg.Extract.Output, extract.MetadataFile)
	if len(args) == 1 {
		manifest = args[0]
	}

	result, err := extract.LoadManifest(manifest)
	if err != nil {
		return err
	}
	return indexResult(cmd.Context(), cfg.Catalog, result, filepath.Dir(manifest), cmd.OutOrStdout())
}
