// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/internal/document"
)

func TestExtractBatch(t *testing.T) {
	root := t.TempDir()
	docs := map[string]*fakeDocument{
		"in/first.pdf":  twoPageDocument(),
		"in/second.pdf": {pages: []fakePage{{text: "solo"}}},
	}
	e := &Extractor{Open: func(path string) (document.Document, error) {
		if d, ok := docs[path]; ok {
			return d, nil
		}
		return nil, errors.New("no such document")
	}}

	var log bytes.Buffer
	result := ExtractBatch(e, []string{"in/first.pdf", "in/missing.pdf", "in/second.pdf"}, root, &log)

	assert.Equal(t, 2, result.Extracted)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Outputs, 2)
	assert.Equal(t, filepath.Join(root, "first"), result.Outputs[0].OutputDir)
	assert.Equal(t, "in/second.pdf", result.Outputs[1].Result.Source)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	assert.FileExists(t, filepath.Join(root, "first", MetadataFile))
	assert.FileExists(t, filepath.Join(root, "first", ImagesDir, "page_1_img_1.png"))
	assert.FileExists(t, filepath.Join(root, "second", MetadataFile))

	out := log.String()
	assert.Contains(t, out, "extracted: in/first.pdf")
	assert.Contains(t, out, "failed:    in/missing.pdf")
	assert.Contains(t, out, "Batch summary: 2 extracted, 1 failed (total: 3)")
	for _, d := range docs {
		assert.Equal(t, 1, d.closed)
	}
}

func TestExtractBatch_Empty(t *testing.T) {
	var log bytes.Buffer
	result := ExtractBatch(&Extractor{}, nil, t.TempDir(), &log)
	require.Zero(t, result.Total())
	assert.False(t, result.HasFailures())
}

func TestBatchOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "report"), BatchOutputDir("out", "docs/report.pdf"))
	assert.Equal(t, filepath.Join("out", "notes"), BatchOutputDir("out", "notes"))
}
