// Package imgmeta recovers pixel dimensions from raw image bytes by
// parsing format headers directly, without an image decoding library.
package imgmeta

import (
	"bytes"
	"encoding/binary"

	"github.com/awrzos/portadoc"
)

// Ensure Sniffer implements portadoc.DimensionSniffer at compile time.
var _ portadoc.DimensionSniffer = (*Sniffer)(nil)

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = []byte("RIFF")
	webpFourCC    = []byte("WEBP")
	gifSignature  = []byte("GIF")
)

// Sniffer reads image dimensions from file headers. Detection is by
// magic-byte signature, never file extension. Supported formats: PNG,
// JPEG, WebP (VP8, VP8L, VP8X), GIF.
type Sniffer struct{}

// NewSniffer creates a new Sniffer.
func NewSniffer() *Sniffer {
	return &Sniffer{}
}

// Dimensions returns the pixel dimensions of the image data. The second
// return is false for unrecognized formats, truncated buffers, or
// corrupt headers.
func (s *Sniffer) Dimensions(data []byte) (portadoc.Dimensions, bool) {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return pngDimensions(data)
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return jpegDimensions(data)
	case bytes.HasPrefix(data, riffSignature):
		return webpDimensions(data)
	case bytes.HasPrefix(data, gifSignature):
		return gifDimensions(data)
	}
	return portadoc.Dimensions{}, false
}

// pngDimensions reads width and height from the IHDR chunk, which must
// be the first chunk after the 8-byte signature.
func pngDimensions(data []byte) (portadoc.Dimensions, bool) {
	if len(data) < 24 {
		return portadoc.Dimensions{}, false
	}
	if !bytes.Equal(data[12:16], []byte("IHDR")) {
		return portadoc.Dimensions{}, false
	}
	w := int(binary.BigEndian.Uint32(data[16:20]))
	h := int(binary.BigEndian.Uint32(data[20:24]))
	if w <= 0 || h <= 0 {
		return portadoc.Dimensions{}, false
	}
	return portadoc.Dimensions{Width: w, Height: h}, true
}

// jpegDimensions walks marker segments from offset 2, skipping each by
// its declared length, until the first Start-Of-Frame marker
// (0xC0-0xCF excluding 0xC4, 0xC8, 0xCC) yields height then width.
func jpegDimensions(data []byte) (portadoc.Dimensions, bool) {
	i := 2
	for i+1 < len(data) {
		if data[i] != 0xFF {
			return portadoc.Dimensions{}, false
		}
		marker := data[i+1]
		// Padding bytes between segments.
		if marker == 0xFF {
			i++
			continue
		}
		if marker >= 0xC0 && marker <= 0xCF && marker != 0xC4 && marker != 0xC8 && marker != 0xCC {
			if i+9 > len(data) {
				return portadoc.Dimensions{}, false
			}
			h := int(binary.BigEndian.Uint16(data[i+5 : i+7]))
			w := int(binary.BigEndian.Uint16(data[i+7 : i+9]))
			if w == 0 || h == 0 {
				return portadoc.Dimensions{}, false
			}
			return portadoc.Dimensions{Width: w, Height: h}, true
		}
		if i+4 > len(data) {
			return portadoc.Dimensions{}, false
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if segLen < 2 {
			return portadoc.Dimensions{}, false
		}
		i += 2 + segLen
	}
	return portadoc.Dimensions{}, false
}

// webpDimensions branches on the first chunk type inside a RIFF/WEBP
// container: VP8 (lossy), VP8L (lossless), or VP8X (extended).
func webpDimensions(data []byte) (portadoc.Dimensions, bool) {
	if len(data) < 20 || !bytes.Equal(data[8:12], webpFourCC) {
		return portadoc.Dimensions{}, false
	}
	chunk := data[12:16]
	switch {
	case bytes.Equal(chunk, []byte("VP8 ")):
		// Lossy: 3-byte frame tag, 0x9D012A sync code, then 14-bit
		// width and height in little-endian 16-bit fields.
		if len(data) < 30 {
			return portadoc.Dimensions{}, false
		}
		if data[23] != 0x9D || data[24] != 0x01 || data[25] != 0x2A {
			return portadoc.Dimensions{}, false
		}
		w := int(binary.LittleEndian.Uint16(data[26:28])) & 0x3FFF
		h := int(binary.LittleEndian.Uint16(data[28:30])) & 0x3FFF
		if w == 0 || h == 0 {
			return portadoc.Dimensions{}, false
		}
		return portadoc.Dimensions{Width: w, Height: h}, true
	case bytes.Equal(chunk, []byte("VP8L")):
		// Lossless: 0x2F signature byte, then 14-bit width and height
		// bit-packed across the next four bytes, both stored minus one.
		if len(data) < 25 || data[20] != 0x2F {
			return portadoc.Dimensions{}, false
		}
		b := data[21:25]
		w := (int(b[0]) | int(b[1]&0x3F)<<8) + 1
		h := (int(b[1])>>6 | int(b[2])<<2 | int(b[3]&0x0F)<<10) + 1
		return portadoc.Dimensions{Width: w, Height: h}, true
	case bytes.Equal(chunk, []byte("VP8X")):
		// Extended: 24-bit little-endian canvas size, stored minus one.
		if len(data) < 30 {
			return portadoc.Dimensions{}, false
		}
		w := (int(data[24]) | int(data[25])<<8 | int(data[26])<<16) + 1
		h := (int(data[27]) | int(data[28])<<8 | int(data[29])<<16) + 1
		return portadoc.Dimensions{Width: w, Height: h}, true
	}
	return portadoc.Dimensions{}, false
}

// gifDimensions reads the logical screen descriptor.
func gifDimensions(data []byte) (portadoc.Dimensions, bool) {
	if len(data) < 10 {
		return portadoc.Dimensions{}, false
	}
	w := int(binary.LittleEndian.Uint16(data[6:8]))
	h := int(binary.LittleEndian.Uint16(data[8:10]))
	if w == 0 || h == 0 {
		return portadoc.Dimensions{}, false
	}
	return portadoc.Dimensions{Width: w, Height: h}, true
}
