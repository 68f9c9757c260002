// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractConfig holds settings for one extraction run.
type ExtractConfig struct {
	// Input is the path to the PDF document.
	Input string `json:"input" yaml:"input"`

	// Output is the directory receiving images/ and extracted_metadata.json.
	Output string `json:"output" yaml:"output"`

	// SkipUnreadableImages omits images the PDF library cannot resolve and
	// records them on the page instead of aborting the run.
	SkipUnreadableImages bool `json:"skip_unreadable_images" yaml:"skip_unreadable_images"`
}

// CatalogConfig holds settings for the SQLite catalog of extraction runs.
type CatalogConfig struct {
	// Dir is the directory holding catalog.db.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default search limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all settings resolved by the CLI.
type Config struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Index ingests the manifest into the catalog after a successful run.
	Index bool `json:"index" yaml:"index"`
}
