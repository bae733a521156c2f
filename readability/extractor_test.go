package readability_test

import (
	"strings"
	"testing"

	"github.com/awrzos/portadoc"
	"github.com/awrzos/portadoc/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements portadoc.RegionExtractor at compile time.
var _ portadoc.RegionExtractor = (*readability.Extractor)(nil)

func TestExtractor_ExtractRegion(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content from boilerplate", func(t *testing.T) {
		t.Parallel()

		var content strings.Builder
		content.WriteString(`<html><head><title>Post</title></head><body>`)
		content.WriteString(`<nav><a href="/">Home</a><a href="/about">About</a></nav>`)
		content.WriteString(`<article><h1>The Article</h1>`)
		for i := 0; i < 12; i++ {
			content.WriteString(`<p>This is a reasonably long paragraph of article text used to give the scoring algorithm enough signal to keep the main content.</p>`)
		}
		content.WriteString(`</article><footer>Copyright notice</footer></body></html>`)

		e := readability.NewExtractor()
		region, err := e.ExtractRegion(content.String())

		require.NoError(t, err)
		assert.Equal(t, "readability", region.Strategy)
		assert.Contains(t, region.HTML, "reasonably long paragraph")
		assert.NotContains(t, region.HTML, "About")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := readability.NewExtractor()
		_, err := e.ExtractRegion("")

		assert.Equal(t, portadoc.EINVALID, portadoc.ErrorCode(err))
	})
}
