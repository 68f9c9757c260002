// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/extract"
)

var batchCmd = &cobra.Command{
	Use:   "batch <pdfs...>",
	Short: "Extract several PDFs, one output directory each",
	Long: `Batch runs the extraction for each PDF in turn, writing to
<output>/<name>/ where <name> is the file name without extension. A failed
document is reported and the batch continues; the command exits non-zero if
any document failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringP("output", "o", defaultOutput, "root output directory")
	batchCmd.Flags().Bool("skip-unreadable-images", false, "record images the PDF library cannot resolve instead of aborting")
	batchCmd.Flags().Bool("index", false, "also ingest each manifest into the catalog")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()
	if cmd.Flags().Changed("output") {
		cfg.Extract.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("skip-unreadable-images") {
		cfg.Extract.SkipUnreadableImages, _ = cmd.Flags().GetBool("skip-unreadable-images")
	}
	if cmd.Flags().Changed("index") {
		cfg.Index, _ = cmd.Flags().GetBool("index")
	}
	w := cmd.OutOrStdout()

	result := extract.ExtractBatch(extract.New(cfg.Extract, w), args, cfg.Extract.Output, w)

	if cfg.Index {
		for _, out := range result.Outputs {
			if err := indexResult(cmd.Context(), cfg.Catalog, out.Result, out.OutputDir, w); err != nil {
				return err
			}
		}
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", result.Failed)
	}
	return nil
}
