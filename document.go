package portadoc

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// PortableDocument is the durable intermediate format: a metadata header
// plus a Markdown body. The body is fully decoded text; no residual
// markup entities remain outside fenced code.
type PortableDocument struct {
	Metadata ArticleMetadata `json:"metadata"`
	Body     string          `json:"body"`
}

// Validate returns an error if the document contains invalid fields.
func (d *PortableDocument) Validate() error {
	return d.Metadata.Validate()
}

// Hash returns a stable content hash of the document body, used to
// detect whether a source article changed since the last conversion.
func (d *PortableDocument) Hash() string {
	return strconv.FormatUint(xxhash.Sum64String(d.Body), 16)
}

// Transcoder converts an extracted article region into a Markdown body.
// The input should be clean region HTML (e.g., from a RegionExtractor).
type Transcoder interface {
	// Transcode transforms region HTML into a Markdown body.
	Transcode(regionHTML string) (string, error)
}

// Exporter converts a portable document back into publish-ready HTML.
type Exporter interface {
	// Export renders the document body as HTML. Local image references
	// are resolved through images for dimension injection; images may
	// be nil, in which case no dimensions are injected.
	Export(doc *PortableDocument, images ImageSource) (string, error)
}

// Publisher pushes an exported article to a remote publishing platform.
// Transport, authentication, and remote identifier resolution are the
// implementation's concern; the core only produces its input.
type Publisher interface {
	// Publish sends the rendered HTML with its resolved metadata and
	// returns the updated sync state (remote id, taxonomy ids).
	Publish(doc *PortableDocument, html string) (SyncState, error)
}
