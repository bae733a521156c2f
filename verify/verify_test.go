package verify_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/awrzos/portadoc"
	"github.com/awrzos/portadoc/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(body string) *portadoc.PortableDocument {
	return &portadoc.PortableDocument{
		Metadata: portadoc.ArticleMetadata{
			Title: "Test Article",
			Slug:  "test-article",
			Date:  "2024-01-15",
		},
		Body: body,
	}
}

// page wraps content in a minimal themed page so region narrowing has
// something to find.
func page(content string) string {
	return `<html><body><div class="entry-content">` + content + `</div><div id="comments"><p>nav words here</p></div></body></html>`
}

// words produces n distinct space-separated words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(parts, " ")
}

func hasIssue(r *portadoc.VerificationReport, substr string) bool {
	for _, s := range r.Issues {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func hasWarning(r *portadoc.VerificationReport, substr string) bool {
	for _, s := range r.Warnings {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestVerifier_WordCount(t *testing.T) {
	t.Parallel()

	v := verify.NewVerifier()
	original := page("<p>" + words(200) + "</p>")

	t.Run("twenty percent loss is an issue", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(160)), portadoc.VerifyOptions{})
		assert.True(t, hasIssue(report, "word count"))
		assert.False(t, report.Passed(false))
	})

	t.Run("eight percent loss is a warning only", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(184)), portadoc.VerifyOptions{})
		assert.False(t, hasIssue(report, "word count"))
		assert.True(t, hasWarning(report, "word count"))
		assert.True(t, report.Passed(false))
		assert.False(t, report.Passed(true))
	})

	t.Run("three percent loss passes clean", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(194)), portadoc.VerifyOptions{})
		assert.False(t, hasIssue(report, "word count"))
		assert.False(t, hasWarning(report, "word count"))
	})

	t.Run("stats are populated", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(194)), portadoc.VerifyOptions{})
		assert.Equal(t, 200, report.Stats.OriginalWords)
		assert.Equal(t, 194, report.Stats.ProducedWords)
		assert.Equal(t, len(original), report.Stats.OriginalBytes)
	})
}

func TestVerifier_Headings(t *testing.T) {
	t.Parallel()

	v := verify.NewVerifier()

	t.Run("missing heading is an issue", func(t *testing.T) {
		t.Parallel()
		original := page("<h2>Setting Up the Environment</h2><p>" + words(20) + "</p>")
		report := v.Verify(original, doc("## Something Else Entirely\n\n"+words(20)), portadoc.VerifyOptions{})
		assert.True(t, hasIssue(report, "Setting Up the Environment"))
	})

	t.Run("fuzzy prefix match tolerates punctuation and truncation", func(t *testing.T) {
		t.Parallel()
		original := page("<h2>Setting Up the Environment, Step by Step</h2><p>" + words(20) + "</p>")
		report := v.Verify(original, doc("## Setting up the environment\n\n"+words(20)), portadoc.VerifyOptions{})
		assert.False(t, hasIssue(report, "Setting Up"))
	})

	t.Run("count mismatch is a warning", func(t *testing.T) {
		t.Parallel()
		original := page("<h2>First</h2><p>" + words(20) + "</p>")
		report := v.Verify(original, doc("## First Part Here Maybe\n\n## Second\n\n"+words(20)), portadoc.VerifyOptions{})
		assert.True(t, hasWarning(report, "heading count"))
	})

	t.Run("page title heading is not compared", func(t *testing.T) {
		t.Parallel()
		original := page("<h1>Page Title</h1><p>" + words(20) + "</p>")
		report := v.Verify(original, doc(words(20)), portadoc.VerifyOptions{})
		assert.False(t, hasIssue(report, "Page Title"))
	})
}

func TestVerifier_Links(t *testing.T) {
	t.Parallel()

	v := verify.NewVerifier()

	t.Run("navigational links are excluded", func(t *testing.T) {
		t.Parallel()
		original := page(`<p><a href="https://example.com/feed/">feed</a> <a href="https://example.com/category/go/">cat</a> <a href="#respond">reply</a> ` + words(20) + `</p>`)
		report := v.Verify(original, doc(words(20)), portadoc.VerifyOptions{})
		assert.False(t, hasIssue(report, "links missing"))
		assert.False(t, hasWarning(report, "links missing"))
	})

	t.Run("few missing links warn", func(t *testing.T) {
		t.Parallel()
		original := page(`<p><a href="https://example.com/post/">post</a> ` + words(20) + `</p>`)
		report := v.Verify(original, doc(words(20)), portadoc.VerifyOptions{})
		assert.True(t, hasWarning(report, "links missing"))
		assert.False(t, hasIssue(report, "links missing"))
	})

	t.Run("many missing links are an issue", func(t *testing.T) {
		t.Parallel()
		var b strings.Builder
		b.WriteString("<p>")
		for i := 0; i < 6; i++ {
			fmt.Fprintf(&b, `<a href="https://example.com/post-%d">p%d</a> `, i, i)
		}
		b.WriteString(words(20) + "</p>")
		report := v.Verify(page(b.String()), doc(words(20)), portadoc.VerifyOptions{})
		assert.True(t, hasIssue(report, "links missing"))
	})

	t.Run("trailing slash and case do not matter", func(t *testing.T) {
		t.Parallel()
		original := page(`<p><a href="https://Example.com/Post/">post</a> ` + words(20) + `</p>`)
		report := v.Verify(original, doc("[post](https://example.com/post)\n\n"+words(20)), portadoc.VerifyOptions{})
		assert.False(t, hasWarning(report, "links missing"))
	})
}

func TestVerifier_ImagesAndCode(t *testing.T) {
	t.Parallel()

	v := verify.NewVerifier()

	t.Run("all images dropped is a warning", func(t *testing.T) {
		t.Parallel()
		original := page(`<p><img src="chart.png" alt="chart"> ` + words(20) + `</p>`)
		report := v.Verify(original, doc(words(20)), portadoc.VerifyOptions{})
		assert.True(t, hasWarning(report, "images"))
		assert.True(t, report.Passed(false))
	})

	t.Run("all code dropped is an issue", func(t *testing.T) {
		t.Parallel()
		original := page(`<pre><code>func main() { fmt.Println("hello") }</code></pre><p>` + words(20) + `</p>`)
		report := v.Verify(original, doc(words(20)), portadoc.VerifyOptions{})
		assert.True(t, hasIssue(report, "code"))
	})

	t.Run("matching code passes", func(t *testing.T) {
		t.Parallel()
		original := page(`<pre><code>func main() {}</code></pre><p>` + words(20) + `</p>`)
		produced := doc("```go\nfunc main() {}\n```\n\n" + words(20))
		report := v.Verify(original, produced, portadoc.VerifyOptions{})
		assert.False(t, hasIssue(report, "code"))
	})
}

func TestVerifier_Structure(t *testing.T) {
	t.Parallel()

	v := verify.NewVerifier()
	original := page("<p>" + words(20) + "</p>")

	t.Run("unbalanced fence is an issue", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(20)+"\n\n```go\nfunc main() {}\n"), portadoc.VerifyOptions{})
		assert.True(t, hasIssue(report, "unbalanced"))
	})

	t.Run("unterminated link is an issue", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(20)+"\n\nsee [the docs](https://example.com"), portadoc.VerifyOptions{})
		assert.True(t, hasIssue(report, "unterminated"))
	})

	t.Run("raw tags outside code warn", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(20)+"\n\n<div>leftover</div>"), portadoc.VerifyOptions{})
		assert.True(t, hasWarning(report, "raw markup"))
	})

	t.Run("tags inside fences are fine", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(20)+"\n\n```html\n<div>sample</div>\n```"), portadoc.VerifyOptions{})
		assert.False(t, hasWarning(report, "raw markup"))
	})

	t.Run("missing title is an issue", func(t *testing.T) {
		t.Parallel()
		d := doc(words(20))
		d.Metadata.Title = ""
		report := v.Verify(original, d, portadoc.VerifyOptions{})
		assert.True(t, hasIssue(report, "title"))
	})
}

func TestVerifier_Sentences(t *testing.T) {
	t.Parallel()

	v := verify.NewVerifier()

	var sentences []string
	for i := 0; i < 10; i++ {
		sentences = append(sentences, fmt.Sprintf("The quick brown foxtrot%d jumped over several lazydogs%d today.", i, i))
	}
	original := page("<p>" + strings.Join(sentences, " ") + "</p>")

	t.Run("faithful text passes", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(strings.Join(sentences, " ")), portadoc.VerifyOptions{})
		assert.False(t, hasWarning(report, "sampled sentences"))
	})

	t.Run("mangled text warns", func(t *testing.T) {
		t.Parallel()
		report := v.Verify(original, doc(words(90)), portadoc.VerifyOptions{})
		assert.True(t, hasWarning(report, "sampled sentences"))
	})
}

func TestVerifier_ChecksAlwaysRun(t *testing.T) {
	t.Parallel()

	v := verify.NewVerifier()
	report := v.Verify(page("<p>"+words(20)+"</p>"), doc(words(20)), portadoc.VerifyOptions{})

	names := make(map[string]bool)
	for _, c := range report.Checks {
		names[c.Name] = true
	}
	for _, want := range []string{"words", "headings", "urls", "images", "code", "lists", "sentences", "front-matter", "structure"} {
		require.True(t, names[want], "check %s missing from report", want)
	}
}
