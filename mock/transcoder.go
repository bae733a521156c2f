package mock

import "github.com/awrzos/portadoc"

var _ portadoc.Transcoder = (*Transcoder)(nil)

// Transcoder is a mock implementation of portadoc.Transcoder.
type Transcoder struct {
	TranscodeFn func(regionHTML string) (string, error)
}

func (t *Transcoder) Transcode(regionHTML string) (string, error) {
	return t.TranscodeFn(regionHTML)
}

var _ portadoc.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of portadoc.Exporter.
type Exporter struct {
	ExportFn func(doc *portadoc.PortableDocument, images portadoc.ImageSource) (string, error)
}

func (e *Exporter) Export(doc *portadoc.PortableDocument, images portadoc.ImageSource) (string, error) {
	return e.ExportFn(doc, images)
}

var _ portadoc.Verifier = (*Verifier)(nil)

// Verifier is a mock implementation of portadoc.Verifier.
type Verifier struct {
	VerifyFn func(originalHTML string, produced *portadoc.PortableDocument, opts portadoc.VerifyOptions) *portadoc.VerificationReport
}

func (v *Verifier) Verify(originalHTML string, produced *portadoc.PortableDocument, opts portadoc.VerifyOptions) *portadoc.VerificationReport {
	return v.VerifyFn(originalHTML, produced, opts)
}
