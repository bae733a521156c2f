package mock

import "github.com/awrzos/portadoc"

var _ portadoc.DimensionSniffer = (*DimensionSniffer)(nil)

// DimensionSniffer is a mock implementation of portadoc.DimensionSniffer.
type DimensionSniffer struct {
	DimensionsFn func(data []byte) (portadoc.Dimensions, bool)
}

func (s *DimensionSniffer) Dimensions(data []byte) (portadoc.Dimensions, bool) {
	return s.DimensionsFn(data)
}

var _ portadoc.ImageSource = (*ImageSource)(nil)

// ImageSource is a mock implementation of portadoc.ImageSource.
type ImageSource struct {
	ReadImageFn func(ref string) ([]byte, error)
}

func (s *ImageSource) ReadImage(ref string) ([]byte, error) {
	return s.ReadImageFn(ref)
}
