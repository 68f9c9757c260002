// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "fmt"

// DocumentOpenError reports that the source document could not be opened or
// parsed. It aborts the run.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("opening document %s: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// ImageExtractionError reports that one embedded image could not be
// resolved to bytes. Index is the 1-based position on the page, or 0 when
// the page's images could not be listed at all.
type ImageExtractionError struct {
	Page  int
	Index int
	Err   error
}

func (e *ImageExtractionError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("listing images on page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("extracting image %d on page %d: %v", e.Index, e.Page, e.Err)
}

func (e *ImageExtractionError) Unwrap() error { return e.Err }

// TextExtractionError reports that the text of a page could not be read.
type TextExtractionError struct {
	Page int
	Err  error
}

func (e *TextExtractionError) Error() string {
	return fmt.Sprintf("extracting text on page %d: %v", e.Page, e.Err)
}

func (e *TextExtractionError) Unwrap() error { return e.Err }

// IOError reports a filesystem failure while creating directories or
// writing output files.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
