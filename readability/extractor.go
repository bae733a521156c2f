// Package readability provides a readability-based region extraction
// engine as an alternative to the heuristic selector chain.
package readability

import (
	"strings"

	"github.com/awrzos/portadoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements portadoc.RegionExtractor at compile time.
var _ portadoc.RegionExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to isolate the article body.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractRegion processes a full page document and returns the main
// content region.
func (e *Extractor) ExtractRegion(fullHTML string) (*portadoc.Region, error) {
	if fullHTML == "" {
		return nil, portadoc.Errorf(portadoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(fullHTML), nil)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(article.Content) == "" {
		// Degrade the same way the heuristic extractor does.
		return &portadoc.Region{HTML: fullHTML, Strategy: "whole-document"}, nil
	}

	return &portadoc.Region{HTML: article.Content, Strategy: "readability"}, nil
}
