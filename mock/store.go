package mock

import (
	"context"

	"github.com/awrzos/portadoc"
)

var _ portadoc.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of portadoc.DocumentStore.
type DocumentStore struct {
	ReadDocumentFn  func(path string) (*portadoc.PortableDocument, error)
	WriteDocumentFn func(path string, doc *portadoc.PortableDocument) error
}

func (s *DocumentStore) ReadDocument(path string) (*portadoc.PortableDocument, error) {
	return s.ReadDocumentFn(path)
}

func (s *DocumentStore) WriteDocument(path string, doc *portadoc.PortableDocument) error {
	return s.WriteDocumentFn(path, doc)
}

var _ portadoc.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of portadoc.HistoryService.
type HistoryService struct {
	UpsertConversionFn     func(ctx context.Context, rec *portadoc.ConversionRecord) error
	FindConversionBySlugFn func(ctx context.Context, slug string) (*portadoc.ConversionRecord, error)
	ListConversionsFn      func(ctx context.Context) ([]*portadoc.ConversionRecord, error)
}

func (s *HistoryService) UpsertConversion(ctx context.Context, rec *portadoc.ConversionRecord) error {
	return s.UpsertConversionFn(ctx, rec)
}

func (s *HistoryService) FindConversionBySlug(ctx context.Context, slug string) (*portadoc.ConversionRecord, error) {
	return s.FindConversionBySlugFn(ctx, slug)
}

func (s *HistoryService) ListConversions(ctx context.Context) ([]*portadoc.ConversionRecord, error) {
	return s.ListConversionsFn(ctx)
}
