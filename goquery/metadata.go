package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awrzos/portadoc"
)

// Ensure MetadataExtractor implements portadoc.MetadataExtractor at compile time.
var _ portadoc.MetadataExtractor = (*MetadataExtractor)(nil)

// isoDateRe matches an ISO-date-shaped substring anywhere in a value.
var isoDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2}(?::\d{2})?(?:Z|[+-]\d{2}:?\d{2})?)?`)

// titleSeparatorRe matches the last site-name separator in a page
// title: an en-dash, em-dash, pipe, or hyphen with surrounding spaces.
var titleSeparatorRe = regexp.MustCompile(`\s+[\x{2013}\x{2014}|-]\s+`)

// MetadataExtractor derives article metadata from the full page
// document. Every field has a per-field precedence chain; missing
// fields stay empty.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata extracts title, date, description, and canonical URL
// with per-field fallbacks. The slug is derived from the title; callers
// may override it.
func (e *MetadataExtractor) ExtractMetadata(fullHTML string) (*portadoc.ArticleMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fullHTML))
	if err != nil {
		return nil, portadoc.Errorf(portadoc.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := &portadoc.ArticleMetadata{
		Title:       extractTitle(doc),
		Date:        extractDate(doc, fullHTML),
		Description: extractDescription(doc),
		Canonical:   attrOf(doc, `link[rel="canonical"]`, "href"),
	}
	meta.Title = portadoc.DecodeEntities(meta.Title)
	meta.Description = portadoc.DecodeEntities(meta.Description)
	meta.Slug = portadoc.Slugify(meta.Title)
	return meta, nil
}

// extractTitle prefers the open-graph title, then the page title with
// its trailing site-name suffix stripped, then themed and generic
// headings.
func extractTitle(doc *goquery.Document) string {
	if t := attrOf(doc, `meta[property="og:title"]`, "content"); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return stripSiteSuffix(t)
	}
	if t := strings.TrimSpace(doc.Find("h1.entry-title, h1.post-title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// stripSiteSuffix removes a trailing " - Site Name" style suffix,
// splitting on the LAST separator so titles containing separators keep
// their earlier parts.
func stripSiteSuffix(title string) string {
	locs := titleSeparatorRe.FindAllStringIndex(title, -1)
	if len(locs) == 0 {
		return title
	}
	last := locs[len(locs)-1]
	return strings.TrimSpace(title[:last[0]])
}

// extractDate prefers an explicit datetime attribute, then the themed
// published-time tag, then the first ISO-date-shaped substring in the
// document.
func extractDate(doc *goquery.Document, fullHTML string) string {
	if d := attrOf(doc, "time[datetime]", "datetime"); d != "" {
		if m := isoDateRe.FindString(d); m != "" {
			return m
		}
	}
	if d := attrOf(doc, `meta[property="article:published_time"]`, "content"); d != "" {
		if m := isoDateRe.FindString(d); m != "" {
			return m
		}
	}
	return isoDateRe.FindString(fullHTML)
}

func extractDescription(doc *goquery.Document) string {
	if d := attrOf(doc, `meta[property="og:description"]`, "content"); d != "" {
		return d
	}
	return attrOf(doc, `meta[name="description"]`, "content")
}

// attrOf returns a trimmed attribute of the first matching element.
func attrOf(doc *goquery.Document, selector, attr string) string {
	val, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(val)
}
