// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.CatalogConfig{Dir: filepath.Join(t.TempDir(), "catalog")})
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(source string) *types.ExtractionResult {
	return &types.ExtractionResult{
		Source: source,
		Pages: []types.PageRecord{
			{
				PageNumber: 1,
				Text:       "Check the brake pads before the tech inspection.",
				Images: []types.ExtractedImage{
					{Filename: "page_1_img_1.png", Path: "out/images/page_1_img_1.png", Format: "png"},
					{Filename: "page_1_img_2.jpg", Path: "out/images/page_1_img_2.jpg", Format: "jpg"},
				},
			},
			{PageNumber: 2, Text: "Helmets must meet the current standard.", Images: []types.ExtractedImage{}},
			{PageNumber: 3, Text: "Brake fluid should be fresh.", Images: []types.ExtractedImage{}},
		},
	}
}

// --- Ingest ---

func TestIngest(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ingest(ctx, sampleResult("assets/guide.pdf"), "out"))

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, Document{
		Source:     "assets/guide.pdf",
		OutputDir:  "out",
		PageCount:  3,
		ImageCount: 2,
		IndexedAt:  "2026-03-01T12:00:00Z",
	}, docs[0])
}

func TestIngest_ReplacesSameSource(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ingest(ctx, sampleResult("guide.pdf"), "out"))

	smaller := &types.ExtractionResult{
		Source: "guide.pdf",
		Pages:  []types.PageRecord{{PageNumber: 1, Text: "Only page."}},
	}
	require.NoError(t, store.Ingest(ctx, smaller, "out2"))

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].PageCount)
	assert.Equal(t, 0, docs[0].ImageCount)
	assert.Equal(t, "out2", docs[0].OutputDir)

	hits, err := store.Search(ctx, SearchOptions{Query: "brake"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIngest_RequiresSource(t *testing.T) {
	store := testStore(t)
	err := store.Ingest(context.Background(), &types.ExtractionResult{}, "out")
	assert.Error(t, err)
}

// --- Search ---

func TestSearch(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.Ingest(ctx, sampleResult("b.pdf"), "out"))
	require.NoError(t, store.Ingest(ctx, sampleResult("a.pdf"), "out"))

	tests := []struct {
		name    string
		opts    SearchOptions
		want    []string // source:page
		wantErr bool
	}{
		{
			name: "case insensitive across documents in order",
			opts: SearchOptions{Query: "BRAKE"},
			want: []string{"a.pdf:1", "a.pdf:3", "b.pdf:1", "b.pdf:3"},
		},
		{
			name: "filtered by source",
			opts: SearchOptions{Query: "brake", Source: "b.pdf"},
			want: []string{"b.pdf:1", "b.pdf:3"},
		},
		{
			name: "limit",
			opts: SearchOptions{Query: "brake", MaxResults: 1},
			want: []string{"a.pdf:1"},
		},
		{
			name: "no match",
			opts: SearchOptions{Query: "carburetor"},
			want: nil,
		},
		{
			name:    "empty query",
			opts:    SearchOptions{Query: "  "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := store.Search(ctx, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var got []string
			for _, h := range hits {
				got = append(got, fmt.Sprintf("%s:%d", h.Source, h.PageNumber))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_HitImages(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.Ingest(ctx, sampleResult("guide.pdf"), "out"))

	hits, err := store.Search(ctx, SearchOptions{Query: "brake"})
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, []string{"out/images/page_1_img_1.png", "out/images/page_1_img_2.jpg"}, hits[0].Images)
	assert.Equal(t, []string{}, hits[1].Images)
	assert.Equal(t, "Check the brake pads before the tech inspection.", hits[0].Snippet)
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("a", 100) + " needle " + strings.Repeat("b", 100)
	// "İ" is two bytes but lowercases to three.
	dotted := strings.Repeat("İ", 30) + " needle " + strings.Repeat("b", 100)

	tests := []struct {
		name, text, query, want string
	}{
		{"short text kept whole", "find the\n\nneedle here", "needle", "find the needle here"},
		{"no match", "haystack", "needle", ""},
		{"long text trimmed", long, "NEEDLE", "..." + strings.Repeat("a", 39) + " needle " + strings.Repeat("b", 39) + "..."},
		{"window stays on the match after wide lowercase runes", dotted, "Needle", "..." + strings.Repeat("İ", 20) + " needle " + strings.Repeat("b", 39) + "..."},
		{"match in folded text", "Straße ÖL prüfen", "öl", "Straße ÖL prüfen"},
		{"empty query", "anything", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snippet(tt.text, tt.query))
		})
	}
}
