package portadoc

import (
	"context"
	"time"
)

// DocumentStore reads and writes portable documents on disk.
type DocumentStore interface {
	// ReadDocument loads and parses a portable document.
	// Returns ENOTFOUND if the file does not exist.
	ReadDocument(path string) (*PortableDocument, error)

	// WriteDocument serializes the document and writes it atomically.
	// No partial output is left behind on failure.
	WriteDocument(path string, doc *PortableDocument) error
}

// ConversionRecord is one row of conversion history: what was converted,
// from where, and its last known remote sync and verification state.
type ConversionRecord struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	SourceURL    string    `json:"sourceUrl"`
	ContentHash  string    `json:"contentHash"`
	RemoteID     int64     `json:"remoteId"`
	SyncedAt     time.Time `json:"syncedAt"`
	VerifyStatus string    `json:"verifyStatus"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ConversionRecord) Validate() error {
	if r.Slug == "" {
		return Errorf(EINVALID, "conversion record slug required")
	}
	return nil
}

// HistoryService records conversion runs, keyed by slug.
type HistoryService interface {
	// UpsertConversion creates or updates the record for its slug.
	UpsertConversion(ctx context.Context, rec *ConversionRecord) error

	// FindConversionBySlug retrieves a record by slug.
	// Returns ENOTFOUND if no record exists.
	FindConversionBySlug(ctx context.Context, slug string) (*ConversionRecord, error)

	// ListConversions retrieves all records, most recently updated first.
	ListConversions(ctx context.Context) ([]*ConversionRecord, error)
}
