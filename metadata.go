package portadoc

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// slugRe matches a URL-safe slug token: lowercase alphanumerics and hyphens.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// SyncState tracks the remote publishing state of an article.
// It is persisted as a nested block in the document front matter so a
// re-publish can address the same remote post.
type SyncState struct {
	RemoteID    int64     `yaml:"remote_id,omitempty" json:"remoteId,omitempty"`
	CategoryIDs []int64   `yaml:"category_ids,omitempty" json:"categoryIds,omitempty"`
	TagIDs      []int64   `yaml:"tag_ids,omitempty" json:"tagIds,omitempty"`
	SyncedAt    time.Time `yaml:"synced_at,omitempty" json:"syncedAt,omitempty"`
}

// IsZero reports whether the sync state carries no remote information.
func (s SyncState) IsZero() bool {
	return s.RemoteID == 0 && len(s.CategoryIDs) == 0 && len(s.TagIDs) == 0 && s.SyncedAt.IsZero()
}

// ArticleMetadata is the metadata header of a portable document.
// Every field except Slug is optional; missing metadata is a
// verification concern, not a transcoding failure.
type ArticleMetadata struct {
	Title       string    `yaml:"title" json:"title"`
	Slug        string    `yaml:"slug" json:"slug"`
	Date        string    `yaml:"date,omitempty" json:"date,omitempty"`
	Canonical   string    `yaml:"canonical_url,omitempty" json:"canonicalUrl,omitempty"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string    `yaml:"category,omitempty" json:"category,omitempty"`
	SeriesOrder int       `yaml:"series_order,omitempty" json:"seriesOrder,omitempty"`
	Categories  []string  `yaml:"categories,omitempty" json:"categories,omitempty"`
	Tags        []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	Sync        SyncState `yaml:"sync,omitempty" json:"sync,omitempty"`
}

// Validate returns an error if the metadata contains invalid fields.
func (m *ArticleMetadata) Validate() error {
	if m.Slug == "" {
		return Errorf(EINVALID, "metadata slug required")
	}
	if !slugRe.MatchString(m.Slug) {
		return Errorf(EINVALID, "metadata slug %q is not URL-safe", m.Slug)
	}
	if m.Date != "" && !validISODate(m.Date) {
		return Errorf(EINVALID, "metadata date %q is not an ISO-8601 date", m.Date)
	}
	if m.Canonical != "" {
		u, err := url.Parse(m.Canonical)
		if err != nil || !u.IsAbs() {
			return Errorf(EINVALID, "metadata canonical URL %q is not absolute", m.Canonical)
		}
	}
	return nil
}

// validISODate accepts an ISO-8601 date or date-time.
func validISODate(s string) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Slugify converts a title into a URL-safe slug token.
func Slugify(s string) string {
	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
