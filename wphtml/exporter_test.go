package wphtml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/awrzos/portadoc"
	"github.com/awrzos/portadoc/fs"
	"github.com/awrzos/portadoc/mock"
	"github.com/awrzos/portadoc/wphtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Exporter implements portadoc.Exporter at compile time.
var _ portadoc.Exporter = (*wphtml.Exporter)(nil)

func export(t *testing.T, body string, opts ...wphtml.Option) string {
	t.Helper()
	e := wphtml.NewExporter(nil, opts...)
	out, err := e.Export(&portadoc.PortableDocument{Body: body}, nil)
	require.NoError(t, err)
	return out
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("renders headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		out := export(t, "## Section Title\n\nA paragraph of text.")

		assert.Contains(t, out, "<h2>Section Title</h2>")
		assert.Contains(t, out, "<p>A paragraph of text.</p>")
	})

	t.Run("renders nested emphasis", func(t *testing.T) {
		t.Parallel()

		out := export(t, "Some **bold and *italic* words** here.")

		assert.Contains(t, out, "<strong>bold and <em>italic</em> words</strong>")
	})

	t.Run("renders links", func(t *testing.T) {
		t.Parallel()

		out := export(t, "See [the docs](https://example.com/docs) for details.")

		assert.Contains(t, out, `<a href="https://example.com/docs">the docs</a>`)
	})

	t.Run("escapes attribute values", func(t *testing.T) {
		t.Parallel()

		out := export(t, `![A "framed" shot](/img/a&b.png)`)

		assert.Contains(t, out, `src="/img/a&amp;b.png"`)
		assert.Contains(t, out, `alt="A &quot;framed&quot; shot"`)
		assert.Contains(t, out, "<figcaption>A &quot;framed&quot; shot</figcaption>")
	})

	t.Run("escapes link targets", func(t *testing.T) {
		t.Parallel()

		out := export(t, `See [docs](https://example.com/?a=1&b=2) now.`)

		assert.Contains(t, out, `<a href="https://example.com/?a=1&amp;b=2">docs</a>`)
	})

	t.Run("renders lists flattened", func(t *testing.T) {
		t.Parallel()

		out := export(t, "- one\n- two\n- three")

		assert.Contains(t, out, "<ul><li>one</li><li>two</li><li>three</li></ul>")
	})

	t.Run("renders ordered lists", func(t *testing.T) {
		t.Parallel()

		out := export(t, "1. first\n2. second")

		assert.Contains(t, out, "<ol><li>first</li><li>second</li></ol>")
	})

	t.Run("renders blockquotes", func(t *testing.T) {
		t.Parallel()

		out := export(t, "> quoted text\n> continues here")

		assert.Contains(t, out, "<blockquote><p>quoted text continues here</p></blockquote>")
	})

	t.Run("code block content is immune to every rewrite", func(t *testing.T) {
		t.Parallel()

		body := "Before.\n\n```\n# not a heading\n- not a list\n**not bold**\n```\n\nAfter."

		out := export(t, body)

		assert.Contains(t, out, "<pre><code># not a heading\n- not a list\n**not bold**</code></pre>")
		assert.NotContains(t, out, "<h1>")
		assert.NotContains(t, out, "<li>not a list</li>")
		assert.NotContains(t, out, "<strong>not bold</strong>")
	})

	t.Run("fenced code keeps language hint and escapes HTML", func(t *testing.T) {
		t.Parallel()

		out := export(t, "```go\nif a < b && c > d {}\n```")

		assert.Contains(t, out, `<pre><code class="language-go">`)
		assert.Contains(t, out, "if a &lt; b &amp;&amp; c &gt; d {}")
	})

	t.Run("inline code is protected and escaped", func(t *testing.T) {
		t.Parallel()

		out := export(t, "Run `make <target>` **now**.")

		assert.Contains(t, out, "<code>make &lt;target&gt;</code>")
		assert.Contains(t, out, "<strong>now</strong>")
	})

	t.Run("renders table with mixed alignment", func(t *testing.T) {
		t.Parallel()

		body := "| Name | Count | Price |\n|:--|:-:|--:|\n| apples | 4 | 1.50 |\n| pears | 12 | 0.75 |"

		out := export(t, body)

		assert.Contains(t, out, `<th style="text-align:left">Name</th>`)
		assert.Contains(t, out, `<th style="text-align:center">Count</th>`)
		assert.Contains(t, out, `<th style="text-align:right">Price</th>`)
		assert.Contains(t, out, `<td style="text-align:left">apples</td>`)
		assert.Contains(t, out, `<td style="text-align:center">12</td>`)
		assert.Contains(t, out, `<td style="text-align:right">0.75</td>`)
	})

	t.Run("pipe lines without separator are not a table", func(t *testing.T) {
		t.Parallel()

		out := export(t, "a | b\nc | d")

		assert.NotContains(t, out, "<table>")
	})

	t.Run("linked image is wrapped before bare image is tried", func(t *testing.T) {
		t.Parallel()

		out := export(t, "[![A photo](/img/photo.jpg)](https://example.com/full)")

		assert.Contains(t, out, `<a href="https://example.com/full">`)
		assert.Contains(t, out, `<img src="/img/photo.jpg" alt="A photo" />`)
		assert.Contains(t, out, "<figcaption>A photo</figcaption>")
	})

	t.Run("bare image becomes captioned figure", func(t *testing.T) {
		t.Parallel()

		out := export(t, "![Diagram](/img/diagram.png)")

		assert.Contains(t, out, `<figure class="wp-block-image">`)
		assert.Contains(t, out, `<img src="/img/diagram.png" alt="Diagram" />`)
		assert.Contains(t, out, "<figcaption>Diagram</figcaption>")
	})

	t.Run("renders horizontal rule", func(t *testing.T) {
		t.Parallel()

		out := export(t, "above\n\n---\n\nbelow")

		assert.Contains(t, out, "<hr />")
	})

	t.Run("rejects nil document", func(t *testing.T) {
		t.Parallel()

		e := wphtml.NewExporter(nil)
		_, err := e.Export(nil, nil)

		assert.Equal(t, portadoc.EINVALID, portadoc.ErrorCode(err))
	})
}

func TestExporter_BlockAnnotations(t *testing.T) {
	t.Parallel()

	t.Run("wraps whole block patterns", func(t *testing.T) {
		t.Parallel()

		out := export(t, "## Title\n\nSome text.\n\n- item", wphtml.WithBlockAnnotations())

		assert.Contains(t, out, "<!-- wp:heading -->\n<h2>Title</h2>\n<!-- /wp:heading -->")
		assert.Contains(t, out, "<!-- wp:paragraph -->\n<p>Some text.</p>\n<!-- /wp:paragraph -->")
		assert.Contains(t, out, "<!-- wp:list -->")
	})

	t.Run("wraps code blocks without annotating their content", func(t *testing.T) {
		t.Parallel()

		out := export(t, "```\n<p>looks like a paragraph</p>\n```", wphtml.WithBlockAnnotations())

		assert.Contains(t, out, "<!-- wp:code -->")
		assert.Contains(t, out, "&lt;p&gt;looks like a paragraph&lt;/p&gt;")
		assert.NotContains(t, out, "<!-- wp:paragraph -->")
	})
}

func TestExporter_DimensionInjection(t *testing.T) {
	t.Parallel()

	sniffer := &mock.DimensionSniffer{
		DimensionsFn: func(data []byte) (portadoc.Dimensions, bool) {
			if string(data) == "png-bytes" {
				return portadoc.Dimensions{Width: 2400, Height: 1600}, true
			}
			return portadoc.Dimensions{}, false
		},
	}
	images := &mock.ImageSource{
		ReadImageFn: func(ref string) ([]byte, error) {
			if ref == "/local/photo.jpg" {
				return []byte("png-bytes"), nil
			}
			return nil, portadoc.Errorf(portadoc.ENOTFOUND, "image %q not found", ref)
		},
	}

	t.Run("injects capped dimensions for local images", func(t *testing.T) {
		t.Parallel()

		e := wphtml.NewExporter(sniffer)
		out, err := e.Export(&portadoc.PortableDocument{Body: "![A](/local/photo.jpg)"}, images)

		require.NoError(t, err)
		assert.Contains(t, out, `width="1200"`)
		assert.Contains(t, out, `height="800"`)
	})

	t.Run("injects dimensions for root-relative refs resolved on disk", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "local"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "local", "photo.jpg"), []byte("png-bytes"), 0644))

		e := wphtml.NewExporter(sniffer)
		out, err := e.Export(&portadoc.PortableDocument{Body: "![A](/local/photo.jpg)"}, fs.NewDirImageSource(dir))

		require.NoError(t, err)
		assert.Contains(t, out, `src="/local/photo.jpg"`)
		assert.Contains(t, out, `width="1200"`)
		assert.Contains(t, out, `height="800"`)
	})

	t.Run("remote images are never probed", func(t *testing.T) {
		t.Parallel()

		probed := false
		remote := &mock.ImageSource{
			ReadImageFn: func(ref string) ([]byte, error) {
				probed = true
				return nil, portadoc.Errorf(portadoc.ENOTFOUND, "unexpected probe")
			},
		}

		e := wphtml.NewExporter(sniffer)
		out, err := e.Export(&portadoc.PortableDocument{Body: "![A](https://cdn.example.com/a.png)"}, remote)

		require.NoError(t, err)
		assert.False(t, probed)
		assert.NotContains(t, out, "width=")
	})

	t.Run("explicit dimensions are left untouched", func(t *testing.T) {
		t.Parallel()

		e := wphtml.NewExporter(sniffer)
		out, err := e.Export(&portadoc.PortableDocument{Body: `<img src="/local/photo.jpg" width="100" height="50">`}, images)

		require.NoError(t, err)
		assert.Contains(t, out, `width="100"`)
		assert.NotContains(t, out, `width="1200"`)
	})

	t.Run("unresolvable images degrade silently", func(t *testing.T) {
		t.Parallel()

		e := wphtml.NewExporter(sniffer)
		out, err := e.Export(&portadoc.PortableDocument{Body: "![B](/missing.png)"}, images)

		require.NoError(t, err)
		assert.Contains(t, out, `<img src="/missing.png"`)
		assert.NotContains(t, out, "width=")
	})
}
