// Package goquery provides the forward-path HTML analysis for portadoc:
// article region extraction and metadata extraction. The verification
// oracle deliberately does not use this package.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awrzos/portadoc"
)

// Ensure RegionExtractor implements portadoc.RegionExtractor at compile time.
var _ portadoc.RegionExtractor = (*RegionExtractor)(nil)

// containerSelectors is the ranked list of themed content containers.
// Authoring themes vary widely; no single selector is universal, so the
// list is tried in order and the first match wins.
var containerSelectors = []string{
	".entry-content",
	".post-content",
	".article-content",
	".post-body",
	"article .content",
	"main article",
	"article",
}

// endMarkerSelectors ranks "end of content" chrome: anything matching
// one of these, and everything after it, is not article content.
var endMarkerSelectors = []string{
	".sharedaddy",
	".share-buttons",
	".social-share",
	".jp-relatedposts",
	".related-posts",
	"#comments",
	".comments-area",
	".comment-respond",
	"#respond",
	"footer",
	".post-navigation",
	".nav-links",
	".author-box",
}

// endMarkerTokens are raw-markup equivalents of endMarkerSelectors used
// by the paragraph fallback, which operates on the document text rather
// than a parsed container.
var endMarkerTokens = []string{
	`class="sharedaddy`,
	`class="share-buttons`,
	`class="social-share`,
	`class="jp-relatedposts`,
	`class="related-posts`,
	`id="comments"`,
	`class="comments-area`,
	`class="comment-respond`,
	`id="respond"`,
	"<footer",
	`class="post-navigation`,
	`class="nav-links`,
	`class="author-box`,
}

// RegionExtractor isolates the article body from a full page document
// using a layered set of structural heuristics.
type RegionExtractor struct{}

// NewRegionExtractor creates a new RegionExtractor.
func NewRegionExtractor() *RegionExtractor {
	return &RegionExtractor{}
}

// ExtractRegion applies extraction strategies in order, first match
// wins:
//
//  1. a themed content container, pruned of end-of-content chrome
//  2. the first paragraph onward, truncated at the nearest end marker
//  3. the whole document (graceful degradation, never a failure)
func (e *RegionExtractor) ExtractRegion(fullHTML string) (*portadoc.Region, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fullHTML))
	if err != nil {
		return nil, portadoc.Errorf(portadoc.EINVALID, "failed to parse HTML: %v", err)
	}

	if region, ok := themedContainer(doc); ok {
		return &portadoc.Region{HTML: region, Strategy: "themed-container"}, nil
	}

	if region, ok := firstParagraph(fullHTML); ok {
		return &portadoc.Region{HTML: region, Strategy: "first-paragraph"}, nil
	}

	return &portadoc.Region{HTML: fullHTML, Strategy: "whole-document"}, nil
}

// themedContainer tries each ranked container selector and returns the
// inner HTML of the first match with trailing chrome pruned.
func themedContainer(doc *goquery.Document) (string, bool) {
	for _, selector := range containerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		pruned := sel.Clone()
		pruneEndMarkers(pruned)
		html, err := pruned.Html()
		if err != nil || strings.TrimSpace(html) == "" {
			continue
		}
		return html, true
	}
	return "", false
}

// pruneEndMarkers removes every end marker inside the container along
// with all content following it.
func pruneEndMarkers(sel *goquery.Selection) {
	for _, marker := range endMarkerSelectors {
		sel.Find(marker).Each(func(_ int, m *goquery.Selection) {
			m.NextAll().Remove()
			m.Remove()
		})
	}
}

// firstParagraph captures from the first paragraph-start token until
// the nearest end marker, or end of document.
func firstParagraph(fullHTML string) (string, bool) {
	start := strings.Index(fullHTML, "<p>")
	if start < 0 {
		start = strings.Index(fullHTML, "<p ")
	}
	if start < 0 {
		return "", false
	}

	rest := fullHTML[start:]
	end := len(rest)
	for _, token := range endMarkerTokens {
		if idx := strings.Index(rest, token); idx >= 0 && idx < end {
			end = idx
		}
	}

	region := rest[:end]
	if end < len(rest) {
		// The marker token sits inside its element's open tag; back up
		// to the start of that tag so the region is not cut mid-tag.
		if open := strings.LastIndexByte(region, '<'); open >= 0 && !strings.ContainsRune(region[open:], '>') {
			region = region[:open]
		}
	}
	if strings.TrimSpace(region) == "" {
		return "", false
	}
	return region, true
}
