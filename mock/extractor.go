package mock

import "github.com/awrzos/portadoc"

var _ portadoc.RegionExtractor = (*RegionExtractor)(nil)

// RegionExtractor is a mock implementation of portadoc.RegionExtractor.
type RegionExtractor struct {
	ExtractRegionFn func(fullHTML string) (*portadoc.Region, error)
}

func (e *RegionExtractor) ExtractRegion(fullHTML string) (*portadoc.Region, error) {
	return e.ExtractRegionFn(fullHTML)
}

var _ portadoc.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of portadoc.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(fullHTML string) (*portadoc.ArticleMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(fullHTML string) (*portadoc.ArticleMetadata, error) {
	return e.ExtractMetadataFn(fullHTML)
}
