// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records finished extractions in a SQLite database so page
// text can be searched across runs. Each source document appears once; a
// later ingest of the same source replaces its rows.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

const (
	dbFile            = "catalog.db"
	defaultMaxResults = 20
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates cfg.Dir/catalog.db and its schema.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			source TEXT PRIMARY KEY,
			output_dir TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			image_count INTEGER NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			source TEXT NOT NULL REFERENCES documents(source) ON DELETE CASCADE,
			page_number INTEGER NOT NULL,
			text TEXT NOT NULL,
			image_count INTEGER NOT NULL,
			PRIMARY KEY (source, page_number)
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			source TEXT NOT NULL REFERENCES documents(source) ON DELETE CASCADE,
			page_number INTEGER NOT NULL,
			filename TEXT NOT NULL,
			path TEXT NOT NULL,
			format TEXT NOT NULL,
			PRIMARY KEY (source, filename)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_images_page ON images(source, page_number)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Ingest stores result under its source, replacing any earlier ingest of the
// same source. outputDir is the directory the manifest was written to.
func (s *Store) Ingest(ctx context.Context, result *types.ExtractionResult, outputDir string) error {
	if result.Source == "" {
		return fmt.Errorf("extraction result has no source")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE source = ?`, result.Source); err != nil {
		return fmt.Errorf("deleting previous rows: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (source, output_dir, page_count, image_count, indexed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		result.Source, outputDir, len(result.Pages), result.TotalImages(),
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	pageStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pages (source, page_number, text, image_count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing page insert: %w", err)
	}
	defer pageStmt.Close()

	imageStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO images (source, page_number, filename, path, format) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing image insert: %w", err)
	}
	defer imageStmt.Close()

	for _, p := range result.Pages {
		if _, err := pageStmt.ExecContext(ctx, result.Source, p.PageNumber, p.Text, p.ImageCount()); err != nil {
			return fmt.Errorf("inserting page %d: %w", p.PageNumber, err)
		}
		for _, img := range p.Images {
			if _, err := imageStmt.ExecContext(ctx, result.Source, p.PageNumber, img.Filename, img.Path, img.Format); err != nil {
				return fmt.Errorf("inserting image %s: %w", img.Filename, err)
			}
		}
	}

	return tx.Commit()
}
