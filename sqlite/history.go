package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/awrzos/portadoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ portadoc.HistoryService = (*HistoryService)(nil)

// HistoryService implements portadoc.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// UpsertConversion creates or updates the record for its slug.
// The passed record is updated in place with its identity and timestamps.
func (s *HistoryService) UpsertConversion(ctx context.Context, rec *portadoc.ConversionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	existing, err := s.FindConversionBySlug(ctx, rec.Slug)
	if err != nil && portadoc.ErrorCode(err) != portadoc.ENOTFOUND {
		return err
	}

	if existing != nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		rec.UpdatedAt = now

		_, err := s.db.ExecContext(ctx, `
			UPDATE conversions
			SET source_url = ?, content_hash = ?, remote_id = ?, synced_at = ?, verify_status = ?, updated_at = ?
			WHERE slug = ?
		`, rec.SourceURL, rec.ContentHash, rec.RemoteID, formatTime(rec.SyncedAt), rec.VerifyStatus,
			rec.UpdatedAt.Format(time.RFC3339), rec.Slug)
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversions (id, slug, source_url, content_hash, remote_id, synced_at, verify_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Slug, rec.SourceURL, rec.ContentHash, rec.RemoteID, formatTime(rec.SyncedAt),
		rec.VerifyStatus, rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindConversionBySlug retrieves a record by slug.
func (s *HistoryService) FindConversionBySlug(ctx context.Context, slug string) (*portadoc.ConversionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, source_url, content_hash, remote_id, synced_at, verify_status, created_at, updated_at
		FROM conversions
		WHERE slug = ?
	`, slug)

	rec, err := scanConversion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, portadoc.Errorf(portadoc.ENOTFOUND, "conversion %q not found", slug)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListConversions retrieves all records, most recently updated first.
func (s *HistoryService) ListConversions(ctx context.Context) ([]*portadoc.ConversionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, source_url, content_hash, remote_id, synced_at, verify_status, created_at, updated_at
		FROM conversions
		ORDER BY updated_at DESC, slug ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*portadoc.ConversionRecord
	for rows.Next() {
		rec, err := scanConversion(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func scanConversion(scan func(dest ...any) error) (*portadoc.ConversionRecord, error) {
	var rec portadoc.ConversionRecord
	var syncedAt, createdAt, updatedAt string

	if err := scan(&rec.ID, &rec.Slug, &rec.SourceURL, &rec.ContentHash, &rec.RemoteID,
		&syncedAt, &rec.VerifyStatus, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var parseErr error
	if syncedAt != "" {
		rec.SyncedAt, parseErr = time.Parse(time.RFC3339, syncedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse synced_at: %w", parseErr)
		}
	}
	rec.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", parseErr)
	}
	rec.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", parseErr)
	}

	return &rec, nil
}

// formatTime stores the zero time as the empty string.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
