package wphtml

import (
	"regexp"
	"strings"
)

// Block annotation patterns. Each matches a whole rendered block on its
// own line; annotation runs while code is still placeholder-protected,
// so no pattern can fire inside a code region.
var blockAnnotations = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`^<h[1-6]>.*</h[1-6]>$`), "heading"},
	{regexp.MustCompile(`^<p>.*</p>$`), "paragraph"},
	{regexp.MustCompile(`^<ul>.*</ul>$`), "list"},
	{regexp.MustCompile(`^<ol>.*</ol>$`), "list"},
	{regexp.MustCompile(`^<blockquote>.*</blockquote>$`), "quote"},
	{regexp.MustCompile(`^<figure class="wp-block-image">.*</figure>$`), "image"},
	{regexp.MustCompile(`^<table>.*</table>$`), "table"},
	{regexp.MustCompile(`^<hr />$`), "separator"},
	{regexp.MustCompile(`^@@PD-CODE-\d+@@$`), "code"},
}

// annotateBlocks wraps whole matched block patterns in editor block
// comments for platform compatibility.
func annotateBlocks(htmlOut string) string {
	lines := strings.Split(htmlOut, "\n")
	for i, line := range lines {
		for _, a := range blockAnnotations {
			if a.re.MatchString(line) {
				lines[i] = "<!-- wp:" + a.name + " -->\n" + line + "\n<!-- /wp:" + a.name + " -->"
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
