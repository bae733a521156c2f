package goquery_test

import (
	"testing"

	"github.com/awrzos/portadoc"
	"github.com/awrzos/portadoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure MetadataExtractor implements portadoc.MetadataExtractor at compile time.
var _ portadoc.MetadataExtractor = (*goquery.MetadataExtractor)(nil)

func TestMetadataExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	e := goquery.NewMetadataExtractor()

	t.Run("prefers open-graph title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="og:title" content="The Real Title">
<title>The Real Title - My Blog</title>
</head><body><h1>Something else</h1></body></html>`

		meta, err := e.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "The Real Title", meta.Title)
		assert.Equal(t, "the-real-title", meta.Slug)
	})

	t.Run("strips site suffix from page title on last separator", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Profiling Go - Part 2 | My Blog</title></head><body></body></html>`

		meta, err := e.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "Profiling Go - Part 2", meta.Title)
	})

	t.Run("falls back to themed heading", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1 class="entry-title">Heading Title</h1></body></html>`

		meta, err := e.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "Heading Title", meta.Title)
	})

	t.Run("prefers time datetime attribute for date", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="article:published_time" content="2023-01-01T00:00:00Z">
</head><body>
<time datetime="2024-03-15T09:30:00Z">March 15</time>
</body></html>`

		meta, err := e.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "2024-03-15T09:30:00Z", meta.Date)
	})

	t.Run("falls back to ISO date substring", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Published on 2022-11-30 by the team.</p></body></html>`

		meta, err := e.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "2022-11-30", meta.Date)
	})

	t.Run("extracts description and canonical", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta name="description" content="A post about things.">
<link rel="canonical" href="https://example.com/post/">
</head><body></body></html>`

		meta, err := e.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "A post about things.", meta.Description)
		assert.Equal(t, "https://example.com/post/", meta.Canonical)
	})

	t.Run("decodes entities in title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="Tips &amp; Tricks"></head><body></body></html>`

		meta, err := e.ExtractMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "Tips & Tricks", meta.Title)
		assert.Equal(t, "tips-tricks", meta.Slug)
	})

	t.Run("missing fields stay empty", func(t *testing.T) {
		t.Parallel()

		meta, err := e.ExtractMetadata(`<html><body><p>bare</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, meta.Title)
		assert.Empty(t, meta.Date)
		assert.Empty(t, meta.Description)
		assert.Empty(t, meta.Canonical)
	})
}
