package portadoc

// Dimensions holds pixel dimensions recovered from an image header.
type Dimensions struct {
	Width  int
	Height int
}

// ImageDescriptor tracks a local image reference during a single export
// pass. It is created when the exported document is scanned, populated
// by the sniffer on demand, and discarded after the pass.
type ImageDescriptor struct {
	Path   string
	Data   []byte
	Width  int
	Height int
}

// DimensionSniffer recovers pixel dimensions from raw image bytes by
// inspecting format headers, without a decoding library. Detection is by
// magic-byte signature, never file extension.
type DimensionSniffer interface {
	// Dimensions returns the pixel dimensions of the image data.
	// The second return is false for unrecognized formats, truncated
	// buffers, or corrupt headers; dimension lookup is a best-effort
	// layout hint, never fatal.
	Dimensions(data []byte) (Dimensions, bool)
}

// ImageSource resolves a local image reference to its raw bytes.
// Implementations are scoped to a single document (e.g., resolving
// relative paths against the document's directory).
type ImageSource interface {
	// ReadImage returns the raw bytes for a local image reference.
	// Returns ENOTFOUND if the reference cannot be resolved.
	ReadImage(ref string) ([]byte, error)
}
