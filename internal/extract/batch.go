// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

// BatchOutput is one successfully extracted document of a batch.
type BatchOutput struct {
	OutputDir string
	Result    *types.ExtractionResult
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Failed    int

	// Outputs lists the successful extractions in input order.
	Outputs []BatchOutput
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether any document failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// BatchOutputDir returns the output directory used for documentPath under
// root: the file name without its extension.
func BatchOutputDir(root, documentPath string) string {
	base := strings.TrimSuffix(filepath.Base(documentPath), filepath.Ext(documentPath))
	return filepath.Join(root, base)
}

// ExtractBatch extracts each document in turn into its own directory under
// outputRoot, printing per-document status to w. A failed document does not
// stop the batch. Two documents with the same base name share a directory
// and the later one wins.
func ExtractBatch(e *Extractor, documentPaths []string, outputRoot string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range documentPaths {
		outDir := BatchOutputDir(outputRoot, p)
		r, err := e.Extract(p, outDir)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", p, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "extracted: %s -> %s (%d pages, %d images)\n", p, outDir, len(r.Pages), r.TotalImages())
		result.Extracted++
		result.Outputs = append(result.Outputs, BatchOutput{OutputDir: outDir, Result: r})
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed (total: %d)\n",
		result.Extracted, result.Failed, result.Total())
	return result
}
