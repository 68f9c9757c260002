// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls page text and embedded images out of a PDF, writes
// the images under an output directory, and records everything in a JSON
// manifest next to them.
//
// Layout of an output directory:
//
//	<output>/
//	  images/page_<N>_img_<M>.<ext>
//	  extracted_metadata.json
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-extract/internal/document"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

const (
	// ImagesDir is the subdirectory of the output directory holding images.
	ImagesDir = "images"
	// MetadataFile is the manifest name inside the output directory.
	MetadataFile = "extracted_metadata.json"

	fallbackFormat = "bin"
)

// Extractor runs one extraction at a time. The zero value is not usable;
// Open must be set.
type Extractor struct {
	// Open opens the source document. document.Open in production.
	Open document.Opener

	// Progress receives the human-readable trace. Nil discards it.
	Progress io.Writer

	// SkipUnreadableImages records unresolvable images on their page and
	// continues. When false the first such image aborts the run.
	SkipUnreadableImages bool
}

// New returns an Extractor backed by the PDF libraries, writing progress to w.
func New(cfg types.ExtractConfig, w io.Writer) *Extractor {
	return &Extractor{
		Open:                 document.Open,
		Progress:             w,
		SkipUnreadableImages: cfg.SkipUnreadableImages,
	}
}

// Extract processes documentPath page by page and writes images and the
// manifest under outputDir. The document is closed before Extract returns
// on every path. On error no manifest is written by this call.
func (e *Extractor) Extract(documentPath, outputDir string) (*types.ExtractionResult, error) {
	w := e.Progress
	if w == nil {
		w = io.Discard
	}

	imagesDir := filepath.Join(outputDir, ImagesDir)
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, &IOError{Op: "creating directory", Path: imagesDir, Err: err}
	}

	doc, err := e.Open(documentPath)
	if err != nil {
		return nil, &DocumentOpenError{Path: documentPath, Err: err}
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	fmt.Fprintf(w, "Processing %d pages...\n", pageCount)

	result := &types.ExtractionResult{
		Source: documentPath,
		Pages:  make([]types.PageRecord, 0, pageCount),
	}

	for pageNumber := 1; pageNumber <= pageCount; pageNumber++ {
		fmt.Fprintf(w, "Processing page %d...\n", pageNumber)

		record, err := e.extractPage(doc, pageNumber, imagesDir, w)
		if err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, record)
	}

	metadataPath := filepath.Join(outputDir, MetadataFile)
	if err := writeManifest(metadataPath, result); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "\nExtraction complete!\n")
	fmt.Fprintf(w, "- Total pages: %d\n", pageCount)
	fmt.Fprintf(w, "- Total images: %d\n", result.TotalImages())
	if skipped := result.TotalSkipped(); skipped > 0 {
		fmt.Fprintf(w, "- Skipped images: %d\n", skipped)
	}
	fmt.Fprintf(w, "- Metadata saved to: %s\n", metadataPath)
	fmt.Fprintf(w, "- Images saved to: %s\n", imagesDir)

	return result, nil
}

func (e *Extractor) extractPage(doc document.Document, pageNumber int, imagesDir string, w io.Writer) (types.PageRecord, error) {
	text, err := doc.PageText(pageNumber)
	if err != nil {
		return types.PageRecord{}, &TextExtractionError{Page: pageNumber, Err: err}
	}

	refs, err := doc.PageImages(pageNumber)
	if err != nil {
		return types.PageRecord{}, &ImageExtractionError{Page: pageNumber, Err: err}
	}

	record := types.PageRecord{
		PageNumber: pageNumber,
		Text:       strings.TrimSpace(text),
		Images:     make([]types.ExtractedImage, 0, len(refs)),
	}

	for i, ref := range refs {
		index := i + 1

		raw, err := doc.ResolveImage(ref)
		if err != nil {
			if !e.SkipUnreadableImages {
				return types.PageRecord{}, &ImageExtractionError{Page: pageNumber, Index: index, Err: err}
			}
			fmt.Fprintf(w, "  skipped image %d: %v\n", index, err)
			record.Skipped = append(record.Skipped, types.SkippedImage{Index: index, Error: err.Error()})
			continue
		}

		format := imageFormat(raw.Format)
		filename := ImageFilename(pageNumber, index, format)
		path := filepath.Join(imagesDir, filename)

		if err := os.WriteFile(path, raw.Data, 0o644); err != nil {
			return types.PageRecord{}, &IOError{Op: "writing image", Path: path, Err: err}
		}

		record.Images = append(record.Images, types.ExtractedImage{
			Filename: filename,
			Path:     path,
			Format:   format,
		})
	}

	return record, nil
}

// ImageFilename returns the on-disk name of the index-th image of a page.
func ImageFilename(pageNumber, index int, format string) string {
	return fmt.Sprintf("page_%d_img_%d.%s", pageNumber, index, format)
}

// imageFormat keeps the library-reported extension when it is a plain
// alphanumeric token, so filenames cannot escape the images directory.
func imageFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(format, ".")))
	if format == "" {
		return fallbackFormat
	}
	for _, r := range format {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fallbackFormat
		}
	}
	return format
}

func writeManifest(path string, result *types.ExtractionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "creating manifest", Path: path, Err: err}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		f.Close()
		return &IOError{Op: "writing manifest", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "writing manifest", Path: path, Err: err}
	}
	return nil
}

// LoadManifest reads a manifest previously written by Extract.
func LoadManifest(path string) (*types.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var result types.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &result, nil
}
