package portadoc

import (
	"regexp"
	"strconv"
	"strings"
)

// namedEntities is the fixed table of named character references the
// decoder understands. Anything else passes through unchanged.
var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"nbsp":   " ",
	"ndash":  "–",
	"mdash":  "—",
	"hellip": "…",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"laquo":  "«",
	"raquo":  "»",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"deg":    "°",
	"times":  "×",
	"middot": "·",
	"bull":   "•",
	"sect":   "§",
	"para":   "¶",
	"plusmn": "±",
	"frac12": "½",
	"shy":    "",
}

var entityRe = regexp.MustCompile(`&(#[xX]?[0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)

// DecodeEntities replaces named and numeric character references with
// literal characters. The replacement is a single left-to-right scan,
// so replacement output is never re-interpreted; calling DecodeEntities
// on already-decoded text returns it unchanged. Unknown entities pass
// through.
func DecodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	return entityRe.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		if name[0] == '#' {
			return decodeNumeric(name[1:], m)
		}
		if lit, ok := namedEntities[name]; ok {
			return lit
		}
		return m
	})
}

// decodeNumeric decodes a numeric reference body ("65" or "x41") by
// code point, returning the original match when out of range.
func decodeNumeric(body, orig string) string {
	base := 10
	if body[0] == 'x' || body[0] == 'X' {
		base = 16
		body = body[1:]
	}
	n, err := strconv.ParseInt(body, base, 32)
	if err != nil || n <= 0 || n > 0x10FFFF {
		return orig
	}
	return string(rune(n))
}
