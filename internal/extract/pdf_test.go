// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/internal/document/pdftest"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// These tests run the production document backend on generated PDFs.

func TestExtractPDF_WritesEmbeddedJPEGsVerbatim(t *testing.T) {
	fixture := pdftest.Images(t)
	outDir := t.TempDir()
	var log bytes.Buffer

	result, err := New(types.ExtractConfig{}, &log).Extract(fixture.Path, outDir)
	require.NoError(t, err)

	require.Len(t, result.Pages, 1)
	page := result.Pages[0]
	assert.Contains(t, page.Text, "Hello")
	require.Equal(t, 2, page.ImageCount())

	for i, img := range page.Images {
		assert.Equal(t, "jpg", img.Format)
		assert.Equal(t, ImageFilename(1, i+1, "jpg"), img.Filename)

		data, err := os.ReadFile(filepath.Join(outDir, ImagesDir, img.Filename))
		require.NoError(t, err)
		assert.Equal(t, fixture.JPEGs[i], data, "%s bytes", img.Filename)
	}
	assert.NoFileExists(t, filepath.Join(outDir, ImagesDir, "page_1_img_3.jpg"))

	loaded, err := LoadManifest(filepath.Join(outDir, MetadataFile))
	require.NoError(t, err)
	assert.Equal(t, result, loaded)
	assert.Contains(t, log.String(), "- Total images: 2")
}

func TestExtractPDF_TextOnly(t *testing.T) {
	outDir := t.TempDir()

	result, err := New(types.ExtractConfig{}, nil).Extract(pdftest.TextPDF(t), outDir)
	require.NoError(t, err)

	require.Len(t, result.Pages, 2)
	assert.Contains(t, result.Pages[0].Text, "Hello")
	assert.Equal(t, "", result.Pages[1].Text)
	assert.Zero(t, result.TotalImages())
}

func TestExtractPDF_UndecodableImage(t *testing.T) {
	fixture := pdftest.BrokenImages(t)

	t.Run("strict policy reports the image index", func(t *testing.T) {
		outDir := t.TempDir()

		_, err := New(types.ExtractConfig{}, nil).Extract(fixture.Path, outDir)

		var imgErr *ImageExtractionError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, 1, imgErr.Page)
		assert.Equal(t, 2, imgErr.Index)
		assert.NoFileExists(t, filepath.Join(outDir, MetadataFile))
	})

	t.Run("skip policy keeps the readable images", func(t *testing.T) {
		outDir := t.TempDir()

		result, err := New(types.ExtractConfig{SkipUnreadableImages: true}, nil).Extract(fixture.Path, outDir)
		require.NoError(t, err)

		page := result.Pages[0]
		require.Equal(t, 2, page.ImageCount())
		assert.Equal(t, "page_1_img_1.jpg", page.Images[0].Filename)
		assert.Equal(t, "page_1_img_3.jpg", page.Images[1].Filename)
		require.Len(t, page.Skipped, 1)
		assert.Equal(t, 2, page.Skipped[0].Index)

		for i, img := range page.Images {
			data, err := os.ReadFile(img.Path)
			require.NoError(t, err)
			assert.Equal(t, fixture.JPEGs[i], data)
		}
	})
}
