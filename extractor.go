package portadoc

// Region holds the article body isolated from a full page document.
type Region struct {
	// HTML is the region markup with navigation, sharing, and comment
	// chrome removed.
	HTML string

	// Strategy names the extraction strategy that matched, for logging
	// and diagnostics (e.g., "themed-container", "first-paragraph",
	// "whole-document").
	Strategy string
}

// RegionExtractor isolates the article body from a full page document.
// Extraction degrades gracefully: when no strategy matches, the whole
// document is the region. It never fails on recognizable HTML.
type RegionExtractor interface {
	ExtractRegion(fullHTML string) (*Region, error)
}

// MetadataExtractor derives article metadata from the full page
// document (not the extracted region). Missing fields are left empty,
// never reported as errors; completeness is a verification concern.
type MetadataExtractor interface {
	ExtractMetadata(fullHTML string) (*ArticleMetadata, error)
}
