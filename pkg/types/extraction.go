// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// ExtractedImage describes one embedded image written to the images
// directory. Format is the extension reported by the PDF library; the bytes
// on disk are never transcoded.
type ExtractedImage struct {
	// Filename is page_<N>_img_<M>.<format>.
	Filename string `json:"filename" yaml:"filename"`

	// Path is the location of the written file (output dir joined with
	// images/ and Filename).
	Path string `json:"path" yaml:"path"`

	// Format is the image file extension, e.g. "png" or "jpg".
	Format string `json:"format" yaml:"format"`
}

// SkippedImage records an embedded image that could not be resolved when
// extraction runs with unreadable images skipped.
type SkippedImage struct {
	// Index is the 1-based position of the image on its page.
	Index int `json:"index" yaml:"index"`

	// Error is the resolution failure message.
	Error string `json:"error" yaml:"error"`
}

// PageRecord holds everything extracted from one page.
type PageRecord struct {
	// PageNumber is 1-based and follows document order.
	PageNumber int `json:"page_number" yaml:"page_number"`

	// Text is the page text with leading and trailing whitespace removed.
	// An image-only page has an empty string here.
	Text string `json:"text" yaml:"text"`

	// Images lists the written images in the order the document exposes them.
	Images []ExtractedImage `json:"images" yaml:"images"`

	// Skipped lists images omitted under the skip policy. Empty otherwise.
	Skipped []SkippedImage `json:"skipped_images,omitempty" yaml:"skipped_images,omitempty"`
}

// ImageCount returns the number of images written for the page. It is
// always derived from Images.
func (p PageRecord) ImageCount() int {
	return len(p.Images)
}

// MarshalJSON emits the manifest layout, adding image_count after images.
func (p PageRecord) MarshalJSON() ([]byte, error) {
	images := p.Images
	if images == nil {
		images = []ExtractedImage{}
	}
	return json.Marshal(struct {
		PageNumber int              `json:"page_number"`
		Text       string           `json:"text"`
		Images     []ExtractedImage `json:"images"`
		ImageCount int              `json:"image_count"`
		Skipped    []SkippedImage   `json:"skipped_images,omitempty"`
	}{
		PageNumber: p.PageNumber,
		Text:       p.Text,
		Images:     images,
		ImageCount: len(images),
		Skipped:    p.Skipped,
	})
}

// ExtractionResult is the manifest written to extracted_metadata.json.
type ExtractionResult struct {
	// Source is the document path exactly as it was given to the extractor.
	Source string `json:"source" yaml:"source"`

	// Pages holds one record per page in document order.
	Pages []PageRecord `json:"pages" yaml:"pages"`
}

// TotalImages returns the number of images written across all pages.
func (r ExtractionResult) TotalImages() int {
	n := 0
	for _, p := range r.Pages {
		n += p.ImageCount()
	}
	return n
}

// TotalSkipped returns the number of images omitted across all pages.
func (r ExtractionResult) TotalSkipped() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.Skipped)
	}
	return n
}
