package wphtml

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/awrzos/portadoc"
)

// MaxImageWidth caps injected image widths; height is scaled
// proportionally to preserve aspect ratio.
const MaxImageWidth = 1200

var (
	imgTagRe = regexp.MustCompile(`<img\b[^>]*/?>`)
	srcRe    = regexp.MustCompile(`\bsrc="([^"]+)"`)
	widthRe  = regexp.MustCompile(`\bwidth="`)
)

// injectDimensions adds width/height attributes to every local image
// tag by sniffing the referenced bytes. Images that already carry
// explicit dimensions are left untouched; remote images are never
// probed; unresolvable or unrecognizable images stay as they are.
func injectDimensions(htmlOut string, images portadoc.ImageSource, sniffer portadoc.DimensionSniffer) string {
	return imgTagRe.ReplaceAllStringFunc(htmlOut, func(tag string) string {
		if widthRe.MatchString(tag) {
			return tag
		}
		sub := srcRe.FindStringSubmatch(tag)
		if sub == nil {
			return tag
		}
		desc, ok := resolveImage(html.UnescapeString(sub[1]), images, sniffer)
		if !ok {
			return tag
		}
		attrs := fmt.Sprintf(` width="%d" height="%d"`, desc.Width, desc.Height)
		if strings.HasSuffix(tag, "/>") {
			return tag[:len(tag)-2] + attrs + " />"
		}
		return tag[:len(tag)-1] + attrs + ">"
	})
}

// resolveImage populates an ImageDescriptor for a local reference and
// scales its dimensions to the width cap.
func resolveImage(ref string, images portadoc.ImageSource, sniffer portadoc.DimensionSniffer) (portadoc.ImageDescriptor, bool) {
	if isRemoteRef(ref) {
		return portadoc.ImageDescriptor{}, false
	}
	data, err := images.ReadImage(ref)
	if err != nil {
		return portadoc.ImageDescriptor{}, false
	}
	dims, ok := sniffer.Dimensions(data)
	if !ok {
		return portadoc.ImageDescriptor{}, false
	}
	desc := portadoc.ImageDescriptor{
		Path:   ref,
		Data:   data,
		Width:  dims.Width,
		Height: dims.Height,
	}
	if desc.Width > MaxImageWidth {
		desc.Height = desc.Height * MaxImageWidth / desc.Width
		desc.Width = MaxImageWidth
	}
	return desc, true
}

// isRemoteRef reports whether an image reference points off-host.
// Only local and relative paths are dimension candidates.
func isRemoteRef(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}
