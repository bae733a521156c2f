package goquery_test

import (
	"testing"

	"github.com/awrzos/portadoc"
	"github.com/awrzos/portadoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure RegionExtractor implements portadoc.RegionExtractor at compile time.
var _ portadoc.RegionExtractor = (*goquery.RegionExtractor)(nil)

func TestRegionExtractor_ExtractRegion(t *testing.T) {
	t.Parallel()

	e := goquery.NewRegionExtractor()

	t.Run("extracts themed entry-content container", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><head><title>Post</title></head>
<body>
<nav><a href="/home">Home</a></nav>
<div class="entry-content">
<h2>Section</h2>
<p>First paragraph.</p>
<p>Second paragraph.</p>
</div>
<div id="comments"><p>Great post!</p></div>
</body></html>`

		region, err := e.ExtractRegion(html)

		require.NoError(t, err)
		assert.Equal(t, "themed-container", region.Strategy)
		assert.Contains(t, region.HTML, "First paragraph.")
		assert.Contains(t, region.HTML, "Second paragraph.")
		assert.NotContains(t, region.HTML, "Great post!")
		assert.NotContains(t, region.HTML, "Home")
	})

	t.Run("prunes trailing chrome inside the container", func(t *testing.T) {
		t.Parallel()

		html := `<div class="post-content">
<p>Article text.</p>
<div class="sharedaddy">Share this:</div>
<div class="jp-relatedposts">Related</div>
</div>`

		region, err := e.ExtractRegion(html)

		require.NoError(t, err)
		assert.Contains(t, region.HTML, "Article text.")
		assert.NotContains(t, region.HTML, "Share this:")
		assert.NotContains(t, region.HTML, "Related")
	})

	t.Run("prunes everything after an end marker", func(t *testing.T) {
		t.Parallel()

		html := `<div class="entry-content">
<p>Keep me.</p>
<div class="jp-relatedposts">Related</div>
<p>Trailing chrome paragraph.</p>
</div>`

		region, err := e.ExtractRegion(html)

		require.NoError(t, err)
		assert.Contains(t, region.HTML, "Keep me.")
		assert.NotContains(t, region.HTML, "Trailing chrome paragraph.")
	})

	t.Run("falls back to first paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="masthead">Site header</div>
<p>Opening paragraph.</p>
<p>More content.</p>
<footer>Copyright</footer>
</body></html>`

		region, err := e.ExtractRegion(html)

		require.NoError(t, err)
		assert.Equal(t, "first-paragraph", region.Strategy)
		assert.Contains(t, region.HTML, "Opening paragraph.")
		assert.Contains(t, region.HTML, "More content.")
		assert.NotContains(t, region.HTML, "Copyright")
	})

	t.Run("paragraph fallback stops at comments container", func(t *testing.T) {
		t.Parallel()

		html := `<body><p>Content.</p><div id="comments"><p>Spam</p></div></body>`

		region, err := e.ExtractRegion(html)

		require.NoError(t, err)
		assert.Contains(t, region.HTML, "Content.")
		assert.NotContains(t, region.HTML, "Spam")
	})

	t.Run("degrades to whole document", func(t *testing.T) {
		t.Parallel()

		html := `<div><span>No paragraphs or containers here.</span></div>`

		region, err := e.ExtractRegion(html)

		require.NoError(t, err)
		assert.Equal(t, "whole-document", region.Strategy)
		assert.Equal(t, html, region.HTML)
	})
}
