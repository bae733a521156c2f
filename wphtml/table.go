package wphtml

import (
	"regexp"
	"strings"
)

// tableSeparatorRe validates the second line of a table block: only
// pipes, hyphens, colons, and whitespace. A block of pipe-delimited
// lines without such a separator is not treated as a table at all.
var tableSeparatorRe = regexp.MustCompile(`^\s*\|?[\s:|-]+\|?\s*$`)

// columnAlignments derives per-column alignment from the separator
// cells: `:--` left, `--:` right, `:-:` center, bare left.
func columnAlignments(separator string) []string {
	cells := splitTableRow(separator)
	aligns := make([]string, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns[i] = "center"
		case right:
			aligns[i] = "right"
		default:
			aligns[i] = "left"
		}
	}
	return aligns
}

// isTableBlock reports whether the lines form a pipe table: at least a
// header row and a valid separator row.
func isTableBlock(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	if !strings.Contains(lines[0], "|") {
		return false
	}
	sep := lines[1]
	return strings.Contains(sep, "-") && strings.Contains(sep, "|") && tableSeparatorRe.MatchString(sep)
}

// renderTable reconstructs an HTML table from a pipe-table block, with
// per-column text-align styles.
func renderTable(lines []string, inline func(string) string) string {
	aligns := columnAlignments(lines[1])

	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for i, cell := range splitTableRow(lines[0]) {
		b.WriteString(`<th style="text-align:` + alignAt(aligns, i) + `">`)
		b.WriteString(inline(strings.TrimSpace(cell)))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, line := range lines[2:] {
		b.WriteString("<tr>")
		for i, cell := range splitTableRow(line) {
			b.WriteString(`<td style="text-align:` + alignAt(aligns, i) + `">`)
			b.WriteString(inline(strings.TrimSpace(cell)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// alignAt returns the alignment for column i, defaulting to left for
// rows wider than the separator.
func alignAt(aligns []string, i int) string {
	if i < len(aligns) {
		return aligns[i]
	}
	return "left"
}

// splitTableRow splits a pipe-delimited row into cells, dropping the
// empty leading/trailing cells produced by outer pipes.
func splitTableRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	return strings.Split(row, "|")
}
