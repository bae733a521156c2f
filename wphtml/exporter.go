// Package wphtml implements the reverse transform: it renders a
// portable document's Markdown body as publish-ready WordPress-flavored
// HTML.
//
// The exporter is a three-pass pipeline. Pass 1 extracts fenced and
// inline code into an indexed side table and leaves stable placeholder
// tokens. Pass 2 runs every other rewrite (tables, images, headings,
// lists, quotes, inline emphasis) over the protected text. Pass 3
// restores code by index, HTML-escaped, so no rewrite ever touches
// code content.
package wphtml

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/awrzos/portadoc"
)

// Ensure Exporter implements portadoc.Exporter at compile time.
var _ portadoc.Exporter = (*Exporter)(nil)

var (
	headingRe     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	hrRe          = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
	ulItemRe      = regexp.MustCompile(`^[-*+]\s+(.*)$`)
	olItemRe      = regexp.MustCompile(`^\d+\.\s+(.*)$`)
	quoteRe       = regexp.MustCompile(`^>\s?(.*)$`)
	blockTokenLn  = regexp.MustCompile(`^@@PD-CODE-\d+@@$`)
	linkedImageRe = regexp.MustCompile(`\[!\[([^\]]*)\]\(([^)\s]+)\)\]\(([^)\s]+)\)`)
	imageRe       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	boldRe        = regexp.MustCompile(`\*\*((?:[^*\n]|\*[^*\n]+\*)+)\*\*`)
	italicRe      = regexp.MustCompile(`\*([^*\n]+)\*`)
	boldUnderRe   = regexp.MustCompile(`__((?:[^_\n]|_[^_\n]+_)+)__`)
	italicUnderRe = regexp.MustCompile(`\b_([^_\n]+)_\b`)
)

// Exporter renders portable documents as WordPress-ready HTML.
type Exporter struct {
	sniffer        portadoc.DimensionSniffer
	includeWrapper bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithBlockAnnotations enables the final annotation pass that wraps
// whole block patterns in editor block comments.
func WithBlockAnnotations() Option {
	return func(e *Exporter) {
		e.includeWrapper = true
	}
}

// NewExporter creates a new Exporter. The sniffer supplies image
// dimensions during injection; it may be nil to disable injection.
func NewExporter(sniffer portadoc.DimensionSniffer, opts ...Option) *Exporter {
	e := &Exporter{sniffer: sniffer}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders the document body as HTML. Local image references are
// resolved through images for dimension injection; a nil source skips
// injection.
func (e *Exporter) Export(doc *portadoc.PortableDocument, images portadoc.ImageSource) (string, error) {
	if doc == nil {
		return "", portadoc.Errorf(portadoc.EINVALID, "document required")
	}

	// Pass 1: protect code before any other substitution runs.
	table := &codeTable{}
	body := table.protect(doc.Body)

	// Pass 2: all remaining rewrites over the protected text.
	out := renderBlocks(body)

	// Block annotations apply to whole block patterns while code is
	// still represented by placeholders, so they can never reach
	// inside a protected region.
	if e.includeWrapper {
		out = annotateBlocks(out)
	}

	// Pass 3: restore code by index.
	out = table.restore(out)

	if e.sniffer != nil && images != nil {
		out = injectDimensions(out, images, e.sniffer)
	}

	return out, nil
}

// renderBlocks walks the body block by block (blank-line separated) and
// renders each as a single line of HTML.
func renderBlocks(body string) string {
	lines := strings.Split(body, "\n")
	var blocks []string

	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		group := []string{lines[i]}
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
			group = append(group, lines[j])
			j++
		}
		i = j

		blocks = append(blocks, renderBlock(group))
	}

	return strings.Join(blocks, "\n\n")
}

// renderBlock renders one blank-line-delimited group of lines.
func renderBlock(group []string) string {
	first := strings.TrimSpace(group[0])

	switch {
	case blockTokenLn.MatchString(first) && len(group) == 1:
		// Protected fenced block; restored in pass 3.
		return first
	case isTableBlock(group):
		return renderTable(group, inline)
	case headingRe.MatchString(first) && len(group) == 1:
		sub := headingRe.FindStringSubmatch(first)
		level := strconv.Itoa(len(sub[1]))
		return "<h" + level + ">" + inline(sub[2]) + "</h" + level + ">"
	case hrRe.MatchString(first) && len(group) == 1:
		return "<hr />"
	case quoteRe.MatchString(first):
		return renderQuote(group)
	case ulItemRe.MatchString(first):
		return renderList(group, ulItemRe, "ul")
	case olItemRe.MatchString(first):
		return renderList(group, olItemRe, "ol")
	case linkedImageRe.MatchString(first) && linkedImageRe.FindString(first) == first && len(group) == 1:
		return renderFigure(first)
	case imageRe.MatchString(first) && imageRe.FindString(first) == first && len(group) == 1:
		return renderFigure(first)
	case strings.HasPrefix(first, "<"):
		// Raw HTML passes through untouched.
		return strings.Join(group, "\n")
	default:
		return "<p>" + inline(strings.Join(trimAll(group), " ")) + "</p>"
	}
}

// renderQuote strips the per-line quote markers and renders a single
// blockquote.
func renderQuote(group []string) string {
	var parts []string
	for _, line := range group {
		if sub := quoteRe.FindStringSubmatch(strings.TrimSpace(line)); sub != nil {
			if strings.TrimSpace(sub[1]) != "" {
				parts = append(parts, strings.TrimSpace(sub[1]))
			}
		}
	}
	return "<blockquote><p>" + inline(strings.Join(parts, " ")) + "</p></blockquote>"
}

// renderList renders consecutive items as a flat single-level list.
func renderList(group []string, itemRe *regexp.Regexp, tag string) string {
	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for _, line := range group {
		line = strings.TrimSpace(line)
		if sub := itemRe.FindStringSubmatch(line); sub != nil {
			b.WriteString("<li>" + inline(sub[1]) + "</li>")
		}
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

// renderFigure wraps a block-level image in a captioned container. The
// linked-image pattern is tried before the bare image pattern so the
// image pattern cannot prematurely consume part of the link.
func renderFigure(line string) string {
	if sub := linkedImageRe.FindStringSubmatch(line); sub != nil && linkedImageRe.FindString(line) == line {
		img := imgTag(sub[2], sub[1])
		fig := `<figure class="wp-block-image"><a href="` + html.EscapeString(sub[3]) + `">` + img + `</a>`
		if sub[1] != "" {
			fig += "<figcaption>" + html.EscapeString(sub[1]) + "</figcaption>"
		}
		return fig + "</figure>"
	}
	sub := imageRe.FindStringSubmatch(line)
	fig := `<figure class="wp-block-image">` + imgTag(sub[2], sub[1])
	if sub[1] != "" {
		fig += "<figcaption>" + html.EscapeString(sub[1]) + "</figcaption>"
	}
	return fig + "</figure>"
}

// imgTag builds an img element with escaped attribute values.
func imgTag(src, alt string) string {
	return `<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) + `" />`
}

// inline applies inline rewrites: linked images before bare images,
// then links, bold before italic so nested emphasis composes.
func inline(s string) string {
	s = linkedImageRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkedImageRe.FindStringSubmatch(m)
		return `<a href="` + html.EscapeString(sub[3]) + `">` + imgTag(sub[2], sub[1]) + `</a>`
	})
	s = imageRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := imageRe.FindStringSubmatch(m)
		return imgTag(sub[2], sub[1])
	})
	s = linkRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		return `<a href="` + html.EscapeString(sub[2]) + `">` + sub[1] + `</a>`
	})
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = boldUnderRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = italicUnderRe.ReplaceAllString(s, "<em>$1</em>")
	return s
}

func trimAll(group []string) []string {
	out := make([]string, len(group))
	for i, line := range group {
		out[i] = strings.TrimSpace(line)
	}
	return out
}
