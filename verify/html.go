// Package verify implements the independent verification oracle. It
// re-derives structural facts from the original page and the produced
// portable document with its own extraction logic and compares them
// under named heuristics. Nothing in this package may call into the
// forward or reverse transcoders; that independence is the point.
package verify

import (
	"regexp"
	"strings"

	"github.com/awrzos/portadoc"
)

// Oracle-side HTML extraction. These are deliberately separate,
// regex-based implementations; see the package comment.
var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	htmlCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	htmlHeadingRe = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	htmlLinkRe    = regexp.MustCompile(`(?is)<a\s[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	htmlImageRe   = regexp.MustCompile(`(?i)<img[^>]*\bsrc="([^"]*)"`)
	htmlCodeRe    = regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`)
	htmlListRe    = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)

	contentStartTokens = []string{"entry-content", "post-content", "article-content", "<article"}
	contentEndTokens   = []string{`id="comments"`, `class="comments-area`, "<footer", `class="post-navigation`, `class="sharedaddy`}

	spaceRe = regexp.MustCompile(`\s+`)
)

// heading is one extracted heading with its level.
type heading struct {
	level int
	text  string
}

// codeSnippetLen bounds extracted code snippets so comparisons stay
// cheap on large documents.
const codeSnippetLen = 80

// narrowHTML cuts the raw page down to its likely content span using a
// plain string scan. This intentionally does not share the forward
// extractor's implementation.
func narrowHTML(raw string) string {
	start := 0
	for _, token := range contentStartTokens {
		idx := strings.Index(raw, token)
		if idx < 0 {
			continue
		}
		start = idx
		// Class tokens land mid-tag; back up to the opening bracket so
		// the container tag is complete and strips cleanly.
		if !strings.HasPrefix(token, "<") {
			if lt := strings.LastIndex(raw[:idx], "<"); lt >= 0 {
				start = lt
			}
		}
		break
	}
	narrowed := raw[start:]
	end := len(narrowed)
	for _, token := range contentEndTokens {
		idx := strings.Index(narrowed, token)
		if idx <= 0 {
			continue
		}
		if !strings.HasPrefix(token, "<") {
			if lt := strings.LastIndex(narrowed[:idx], "<"); lt > 0 {
				idx = lt
			}
		}
		if idx < end {
			end = idx
		}
	}
	return narrowed[:end]
}

// htmlText flattens HTML to plain text: scripts, comments, and tags
// removed, entities decoded, whitespace collapsed.
func htmlText(raw string) string {
	s := scriptStyleRe.ReplaceAllString(raw, " ")
	s = htmlCommentRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = portadoc.DecodeEntities(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func htmlHeadings(raw string) []heading {
	var out []heading
	for _, m := range htmlHeadingRe.FindAllStringSubmatch(raw, -1) {
		out = append(out, heading{
			level: int(m[1][0] - '0'),
			text:  htmlText(m[2]),
		})
	}
	return out
}

// htmlLinks returns url -> label for every anchor.
func htmlLinks(raw string) map[string]string {
	out := make(map[string]string)
	for _, m := range htmlLinkRe.FindAllStringSubmatch(raw, -1) {
		if m[1] == "" {
			continue
		}
		out[m[1]] = htmlText(m[2])
	}
	return out
}

func htmlImages(raw string) []string {
	var out []string
	for _, m := range htmlImageRe.FindAllStringSubmatch(raw, -1) {
		out = append(out, m[1])
	}
	return out
}

// htmlCodeSnippets returns the first codeSnippetLen characters of each
// pre block.
func htmlCodeSnippets(raw string) []string {
	var out []string
	for _, m := range htmlCodeRe.FindAllStringSubmatch(raw, -1) {
		out = append(out, snippet(htmlText(m[1])))
	}
	return out
}

func htmlListItems(raw string) []string {
	var out []string
	for _, m := range htmlListRe.FindAllStringSubmatch(raw, -1) {
		out = append(out, htmlText(m[1]))
	}
	return out
}

func snippet(s string) string {
	if len(s) > codeSnippetLen {
		return s[:codeSnippetLen]
	}
	return s
}
