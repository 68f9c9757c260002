// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// snippetRadius is the number of bytes kept on each side of a match.
const snippetRadius = 40

// SearchOptions holds parameters for catalog searches.
type SearchOptions struct {
	// Query is matched case-insensitively as a substring of page text.
	Query string

	// Source restricts results to one document.
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Hit is one page whose text matched a search.
type Hit struct {
	Source     string   `json:"source" yaml:"source"`
	PageNumber int      `json:"page_number" yaml:"page_number"`
	Snippet    string   `json:"snippet" yaml:"snippet"`
	Images     []string `json:"images" yaml:"images"`
}

// Document summarises one ingested extraction.
type Document struct {
	Source     string `json:"source" yaml:"source"`
	OutputDir  string `json:"output_dir" yaml:"output_dir"`
	PageCount  int    `json:"page_count" yaml:"page_count"`
	ImageCount int    `json:"image_count" yaml:"image_count"`
	IndexedAt  string `json:"indexed_at" yaml:"indexed_at"`
}

// Search returns pages containing opts.Query ordered by source and page
// number. Each hit lists the paths of the images on that page.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]Hit, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT source, page_number, text FROM pages
		WHERE instr(lower(text), lower(?)) > 0`
	args := []any{opts.Query}
	if opts.Source != "" {
		query += ` AND source = ?`
		args = append(args, opts.Source)
	}
	query += ` ORDER BY source, page_number LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching pages: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h    Hit
			text string
		)
		if err := rows.Scan(&h.Source, &h.PageNumber, &text); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		h.Snippet = snippet(text, opts.Query)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}

	for i := range hits {
		images, err := s.pageImages(ctx, hits[i].Source, hits[i].PageNumber)
		if err != nil {
			return nil, err
		}
		hits[i].Images = images
	}
	return hits, nil
}

// Documents lists every ingested extraction ordered by source.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output_dir, page_count, image_count, indexed_at
		 FROM documents ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.Source, &d.OutputDir, &d.PageCount, &d.ImageCount, &d.IndexedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Store) pageImages(ctx context.Context, source string, page int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path FROM images WHERE source = ? AND page_number = ? ORDER BY rowid`,
		source, page)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// snippet returns the text around the first case-insensitive match of query,
// with whitespace runs collapsed.
func snippet(text, query string) string {
	idx, matchEnd := indexFold(text, query)
	if idx < 0 {
		return ""
	}

	start := idx - snippetRadius
	prefix := "..."
	if start <= 0 {
		start, prefix = 0, ""
	}
	end := matchEnd + snippetRadius
	suffix := "..."
	if end >= len(text) {
		end, suffix = len(text), ""
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	return prefix + strings.Join(strings.Fields(text[start:end]), " ") + suffix
}

// indexFold returns the byte span in text of the first match of query under
// Unicode case folding, or -1, -1. Offsets always refer to text itself.
func indexFold(text, query string) (int, int) {
	n := utf8.RuneCountInString(query)
	if n == 0 {
		return -1, -1
	}
	for i := 0; i < len(text); {
		j := i
		for k := 0; k < n && j < len(text); k++ {
			_, size := utf8.DecodeRuneInString(text[j:])
			j += size
		}
		if strings.EqualFold(text[i:j], query) {
			return i, j
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, -1
}
