// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/catalog"
	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()
	w := cmd.OutOrStdout()

	result, err := extract.New(cfg.Extract, w).Extract(cfg.Extract.Input, cfg.Extract.Output)
	if err != nil {
		return err
	}

	if cfg.Index {
		return indexResult(cmd.Context(), cfg.Catalog, result, cfg.Extract.Output, w)
	}
	return nil
}

// indexResult ingests result into the catalog at cfg.Dir.
func indexResult(ctx context.Context, cfg types.CatalogConfig, result *types.ExtractionResult, outputDir string, w io.Writer) error {
	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Ingest(ctx, result, outputDir); err != nil {
		return fmt.Errorf("indexing %s: %w", result.Source, err)
	}
	fmt.Fprintf(w, "indexed: %s (%d pages, %d images)\n", result.Source, len(result.Pages), result.TotalImages())
	return nil
}
