// Package trafilatura provides a trafilatura-based region extraction
// engine as an alternative to the heuristic selector chain.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/awrzos/portadoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements portadoc.RegionExtractor at compile time.
var _ portadoc.RegionExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to isolate the article body.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(fullHTML), opts)
	if err != nil {
		return nil, err
	}

	if result.ContentNode == nil {
		return &portadoc.Region{HTML: fullHTML, Strategy: "whole-document"}, nil
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &portadoc.Region{HTML: contentHTML, Strategy: "trafilatura"}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
