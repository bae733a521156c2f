// Package portadoc converts published web-article HTML into portable
// Markdown documents with a front-matter metadata header, converts them
// back into publish-ready HTML, and independently verifies that no
// content was lost or corrupted during the round trip.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// htmltomarkdown/, sqlite/). The verification oracle in verify/ is
// deliberately implemented without the goquery and html-to-markdown
// code paths used by the forward transcoder, so a bug common to both
// sides cannot mask itself.
package portadoc
