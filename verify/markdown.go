package verify

import (
	"regexp"
	"strings"

	"github.com/awrzos/portadoc"
)

// Oracle-side Markdown extraction, independent of the exporter's rule
// tables.
var (
	mdHeadingRe  = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	mdImageRe    = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)
	mdListItemRe = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+(.+)$`)
	mdEmphasisRe = regexp.MustCompile(`[*_]{1,3}`)
	mdQuoteRe    = regexp.MustCompile(`(?m)^>\s?`)
	fenceLineRe  = regexp.MustCompile("(?m)^```.*$")
	rawTagRe     = regexp.MustCompile(`</?[a-zA-Z][^>\n]*>`)

	// unterminatedLinkRe matches link syntax opened but never closed on
	// a line.
	unterminatedLinkRe = regexp.MustCompile(`(?m)\[[^\]\n]*\]\([^)\n]*$`)
)

// mdFences splits a Markdown body into fenced code contents and the
// text outside fences.
func mdFences(body string) (outside string, blocks []string) {
	lines := strings.Split(body, "\n")
	var out, cur []string
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				blocks = append(blocks, strings.Join(cur, "\n"))
				cur = nil
			}
			inFence = !inFence
			continue
		}
		if inFence {
			cur = append(cur, line)
		} else {
			out = append(out, line)
		}
	}
	// An unterminated fence still contributes its content.
	if inFence && len(cur) > 0 {
		blocks = append(blocks, strings.Join(cur, "\n"))
	}
	return strings.Join(out, "\n"), blocks
}

// mdText flattens a Markdown body to plain text: syntax markers
// removed, entities decoded, whitespace collapsed. Code content is
// kept, mirroring the HTML side.
func mdText(body string) string {
	outside, blocks := mdFences(body)
	s := outside
	// Alt text is dropped, mirroring the HTML side where attributes
	// vanish with their tags.
	s = mdImageRe.ReplaceAllString(s, " ")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = mdHeadingRe.ReplaceAllString(s, "$2")
	s = mdQuoteRe.ReplaceAllString(s, "")
	s = mdEmphasisRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "|", " ")
	s = strings.ReplaceAll(s, "`", "")
	s = portadoc.DecodeEntities(s)
	s = s + " " + strings.Join(blocks, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func mdHeadings(body string) []heading {
	outside, _ := mdFences(body)
	var out []heading
	for _, m := range mdHeadingRe.FindAllStringSubmatch(outside, -1) {
		out = append(out, heading{
			level: len(m[1]),
			text:  strings.TrimSpace(m[2]),
		})
	}
	return out
}

// mdLinks returns url -> label, skipping image references.
func mdLinks(body string) map[string]string {
	outside, _ := mdFences(body)
	outside = mdImageRe.ReplaceAllString(outside, "")
	out := make(map[string]string)
	for _, m := range mdLinkRe.FindAllStringSubmatch(outside, -1) {
		out[m[2]] = m[1]
	}
	return out
}

func mdImages(body string) []string {
	outside, _ := mdFences(body)
	var out []string
	for _, m := range mdImageRe.FindAllStringSubmatch(outside, -1) {
		out = append(out, m[2])
	}
	return out
}

func mdCodeSnippets(body string) []string {
	_, blocks := mdFences(body)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, snippet(strings.TrimSpace(b)))
	}
	return out
}

func mdListItems(body string) []string {
	outside, _ := mdFences(body)
	var out []string
	for _, m := range mdListItemRe.FindAllStringSubmatch(outside, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}
