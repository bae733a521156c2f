// Package htmltomarkdown implements the forward transcoder: it turns an
// extracted article region into the Markdown body of a portable
// document.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/awrzos/portadoc"
)

// Ensure Transcoder implements portadoc.Transcoder at compile time.
var _ portadoc.Transcoder = (*Transcoder)(nil)

var (
	// authoringCommentRe matches document-authoring-tool comments
	// (block markers and editor annotations) that carry no visible
	// content.
	authoringCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

	// listIndentRe matches the leading indentation of a nested list
	// item; nested lists are flattened to single-level items.
	listIndentRe = regexp.MustCompile(`^[ \t]+([-*+] |\d+\. )`)

)

// Transcoder converts region HTML into Markdown. The pass order
// matters: comments and structural containers are rewritten before the
// Markdown conversion, and whitespace normalization runs last so it
// never re-interprets converter output.
type Transcoder struct {
	conv *converter.Converter
}

// NewTranscoder creates a new Transcoder.
func NewTranscoder() *Transcoder {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Transcoder{conv: conv}
}

// Transcode transforms region HTML into a Markdown body.
func (t *Transcoder) Transcode(regionHTML string) (string, error) {
	if strings.TrimSpace(regionHTML) == "" {
		return "", portadoc.Errorf(portadoc.EINVALID, "empty region input")
	}

	cleaned, err := preprocess(regionHTML)
	if err != nil {
		return "", err
	}

	md, err := t.conv.ConvertString(cleaned)
	if err != nil {
		return "", err
	}

	return postprocess(md), nil
}

// preprocess strips authoring comments, unwraps figure containers, and
// drops data-URI images before the Markdown conversion runs.
func preprocess(regionHTML string) (string, error) {
	cleaned := authoringCommentRe.ReplaceAllString(regionHTML, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
	if err != nil {
		return "", portadoc.Errorf(portadoc.EINVALID, "failed to parse region HTML: %v", err)
	}

	// Figures become their inner content; captions survive as a
	// trailing emphasized line.
	doc.Find("figure").Each(func(_ int, fig *goquery.Selection) {
		caption := strings.TrimSpace(fig.Find("figcaption").First().Text())
		fig.Find("figcaption").Remove()
		inner, err := fig.Html()
		if err != nil {
			return
		}
		if caption != "" {
			inner += "<p><em>" + caption + "</em></p>"
		}
		fig.ReplaceWithHtml(inner)
	})

	// Data-URI images are never portable document candidates.
	doc.Find(`img[src^="data:"]`).Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return cleaned, nil
	}
	inner, err := body.Html()
	if err != nil {
		return "", portadoc.Errorf(portadoc.EINVALID, "failed to render region HTML: %v", err)
	}
	return inner, nil
}

// postprocess normalizes converter output: nested lists are flattened,
// entities decoded, blank-line runs collapsed, and trailing whitespace
// trimmed. Fenced code content is taken verbatim and left untouched.
func postprocess(md string) string {
	md = mapOutsideFences(md, func(line string) string {
		line = listIndentRe.ReplaceAllString(line, "$1")
		line = portadoc.DecodeEntities(line)
		return strings.TrimRight(line, " \t")
	})
	md = collapseBlankLines(md)
	return strings.TrimSpace(md) + "\n"
}

// collapseBlankLines reduces runs of blank lines outside fenced code to
// a single blank line. Blank runs inside fences are part of the code.
func collapseBlankLines(md string) string {
	lines := strings.Split(md, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	blanks := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			blanks = 0
			out = append(out, line)
			continue
		}
		if !inFence && line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else if !inFence {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// mapOutsideFences applies fn to every line outside fenced code blocks.
func mapOutsideFences(md string, fn func(string) string) string {
	lines := strings.Split(md, "\n")
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if !inFence {
			lines[i] = fn(line)
		}
	}
	return strings.Join(lines, "\n")
}
