// Package fs provides file-based storage for portable documents.
package fs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/awrzos/portadoc"
	"gopkg.in/yaml.v3"
)

const frontMatterFence = "---"

// closingFenceRe matches a line holding exactly the fence, so fence
// lookalikes inside front matter values never terminate the block.
var closingFenceRe = regexp.MustCompile(`(?m)^` + frontMatterFence + `$`)

// MarshalDocument renders a document as YAML front matter followed by
// the Markdown body. Keys are emitted in a fixed order so repeated
// conversions of the same content are byte-identical.
func MarshalDocument(doc *portadoc.PortableDocument) string {
	var b strings.Builder
	b.WriteString(frontMatterFence + "\n")
	writeField(&b, "title", doc.Metadata.Title)
	writeField(&b, "slug", doc.Metadata.Slug)
	writeField(&b, "date", doc.Metadata.Date)
	writeField(&b, "canonical_url", doc.Metadata.Canonical)
	writeField(&b, "description", doc.Metadata.Description)
	writeField(&b, "category", doc.Metadata.Category)
	if doc.Metadata.SeriesOrder > 0 {
		b.WriteString("series_order: " + strconv.Itoa(doc.Metadata.SeriesOrder) + "\n")
	}
	writeList(&b, "categories", doc.Metadata.Categories)
	writeList(&b, "tags", doc.Metadata.Tags)
	writeSync(&b, doc.Metadata.Sync)
	b.WriteString(frontMatterFence + "\n\n")
	b.WriteString(strings.TrimRight(doc.Body, "\n"))
	b.WriteString("\n")
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(key + ": " + yamlScalar(value) + "\n")
}

func writeList(b *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteString(key + ":\n")
	for _, v := range values {
		b.WriteString("  - " + yamlScalar(v) + "\n")
	}
}

func writeSync(b *strings.Builder, sync portadoc.SyncState) {
	if sync.IsZero() {
		return
	}
	b.WriteString("sync:\n")
	if sync.RemoteID != 0 {
		fmt.Fprintf(b, "  remote_id: %d\n", sync.RemoteID)
	}
	writeIntList(b, "category_ids", sync.CategoryIDs)
	writeIntList(b, "tag_ids", sync.TagIDs)
	if !sync.SyncedAt.IsZero() {
		b.WriteString("  synced_at: " + sync.SyncedAt.UTC().Format("2006-01-02T15:04:05Z07:00") + "\n")
	}
}

func writeIntList(b *strings.Builder, key string, values []int64) {
	if len(values) == 0 {
		return
	}
	b.WriteString("  " + key + ":\n")
	for _, v := range values {
		fmt.Fprintf(b, "    - %d\n", v)
	}
}

// yamlScalar quotes a value only when YAML would otherwise mangle it.
func yamlScalar(v string) string {
	if needsQuoting(v) {
		return strconv.Quote(v)
	}
	return v
}

func needsQuoting(v string) bool {
	if v != strings.TrimSpace(v) {
		return true
	}
	if strings.ContainsAny(v, ":#\"'\n&*[]{}|>") {
		return true
	}
	// Leading indicator characters and bare booleans/numbers change
	// type under YAML; quote them to keep strings strings.
	if v == "" || v == "true" || v == "false" || v == "null" || v == "~" {
		return true
	}
	if strings.IndexAny(v, "-?%@`!") == 0 {
		return true
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	return false
}

// ParseDocument parses front matter plus body. Content without a front
// matter block becomes a body-only document with zero metadata; the
// verifier grades the missing fields.
func ParseDocument(raw string) (*portadoc.PortableDocument, error) {
	if !strings.HasPrefix(raw, frontMatterFence+"\n") {
		return &portadoc.PortableDocument{Body: raw}, nil
	}

	rest := raw[len(frontMatterFence)+1:]
	loc := closingFenceRe.FindStringIndex(rest)
	if loc == nil {
		return nil, portadoc.Errorf(portadoc.EINVALID, "unterminated front matter block")
	}

	var meta portadoc.ArticleMetadata
	if err := yaml.Unmarshal([]byte(rest[:loc[0]]), &meta); err != nil {
		return nil, portadoc.Errorf(portadoc.EINVALID, "malformed front matter: %v", err)
	}

	body := rest[loc[1]:]
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")

	return &portadoc.PortableDocument{Metadata: meta, Body: body}, nil
}
