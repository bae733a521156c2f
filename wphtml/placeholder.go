package wphtml

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	fencedCodeRe = regexp.MustCompile("(?s)```([^`\n]*)\n(.*?)```")
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")

	blockTokenRe  = regexp.MustCompile(`@@PD-CODE-(\d+)@@`)
	inlineTokenRe = regexp.MustCompile(`@@PD-SPAN-(\d+)@@`)
)

// codeBlock is one protected fenced block with its language hint.
type codeBlock struct {
	lang    string
	content string
}

// codeTable holds protected code spans extracted in pass 1 and restored
// by index in pass 3. While a span is protected it is represented by a
// stable placeholder token that no other rewrite rule can touch, so
// code containing list-marker or heading-looking text is never
// reinterpreted as structure.
type codeTable struct {
	blocks  []codeBlock
	inlines []string
}

// protect extracts fenced blocks first, then inline code spans, and
// replaces each with an indexed placeholder token.
func (t *codeTable) protect(body string) string {
	body = fencedCodeRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := fencedCodeRe.FindStringSubmatch(m)
		t.blocks = append(t.blocks, codeBlock{
			lang:    strings.TrimSpace(sub[1]),
			content: strings.TrimSuffix(sub[2], "\n"),
		})
		return fmt.Sprintf("@@PD-CODE-%d@@", len(t.blocks)-1)
	})
	body = inlineCodeRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := inlineCodeRe.FindStringSubmatch(m)
		t.inlines = append(t.inlines, sub[1])
		return fmt.Sprintf("@@PD-SPAN-%d@@", len(t.inlines)-1)
	})
	return body
}

// restore replaces placeholder tokens with rendered, HTML-escaped code.
// It runs after every other rewrite so code content is immune to all of
// them.
func (t *codeTable) restore(s string) string {
	s = blockTokenRe.ReplaceAllStringFunc(s, func(m string) string {
		idx := atoiToken(blockTokenRe, m)
		if idx < 0 || idx >= len(t.blocks) {
			return m
		}
		b := t.blocks[idx]
		class := ""
		if b.lang != "" {
			class = fmt.Sprintf(` class="language-%s"`, b.lang)
		}
		return fmt.Sprintf("<pre><code%s>%s</code></pre>", class, html.EscapeString(b.content))
	})
	s = inlineTokenRe.ReplaceAllStringFunc(s, func(m string) string {
		idx := atoiToken(inlineTokenRe, m)
		if idx < 0 || idx >= len(t.inlines) {
			return m
		}
		return "<code>" + html.EscapeString(t.inlines[idx]) + "</code>"
	})
	return s
}

// atoiToken parses the numeric index out of a placeholder token.
func atoiToken(re *regexp.Regexp, token string) int {
	sub := re.FindStringSubmatch(token)
	if len(sub) != 2 {
		return -1
	}
	n, err := strconv.Atoi(sub[1])
	if err != nil {
		return -1
	}
	return n
}
