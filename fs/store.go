package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/awrzos/portadoc"
)

// Ensure Store implements portadoc.DocumentStore at compile time.
var _ portadoc.DocumentStore = (*Store)(nil)

// Store reads and writes portable documents as Markdown files with
// YAML front matter.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// ReadDocument loads and parses a portable document from disk.
func (s *Store) ReadDocument(path string) (*portadoc.PortableDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, portadoc.Errorf(portadoc.ENOTFOUND, "document %q not found", path)
		}
		return nil, err
	}
	return ParseDocument(string(data))
}

// WriteDocument writes a document atomically: content goes to a
// temporary file in the target directory, then renames over the final
// path. A failed write leaves no partial output behind.
func (s *Store) WriteDocument(path string, doc *portadoc.PortableDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(MarshalDocument(doc)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Ensure DirImageSource implements portadoc.ImageSource at compile time.
var _ portadoc.ImageSource = (*DirImageSource)(nil)

// DirImageSource resolves image references against a document's
// directory. Root-relative references resolve against the same root,
// the way a web server would serve them. References outside the
// directory tree are rejected.
type DirImageSource struct {
	dir string
}

// NewDirImageSource creates an image source rooted at dir.
func NewDirImageSource(dir string) *DirImageSource {
	return &DirImageSource{dir: dir}
}

// ReadImage returns the raw bytes for an image reference.
func (s *DirImageSource) ReadImage(ref string) ([]byte, error) {
	ref = strings.TrimLeft(ref, "/")
	if filepath.IsAbs(ref) {
		return nil, portadoc.Errorf(portadoc.EINVALID, "image reference %q must be relative", ref)
	}

	full := filepath.Join(s.dir, filepath.FromSlash(ref))
	rel, err := filepath.Rel(s.dir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, portadoc.Errorf(portadoc.EINVALID, "image reference %q escapes the document directory", ref)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, portadoc.Errorf(portadoc.ENOTFOUND, "image %q not found", ref)
		}
		return nil, err
	}
	return data, nil
}
