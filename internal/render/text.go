package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 40

// Layout aligns the header and every row of t into text columns. The
// returned lines match t.Rows one to one; the placeholder row is its
// message.
func Layout(t Table) (header string, lines []string) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, r := range t.DataRows() {
		for i, c := range r.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], min(runewidth.StringWidth(c), maxCellWidth))
			}
		}
	}

	lines = make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Placeholder {
			lines = append(lines, r.Cells[0])
			continue
		}
		lines = append(lines, line(r.Cells, widths))
	}
	return line(t.Columns, widths), lines
}

// Plain renders t as aligned text.
func Plain(t Table) string {
	header, lines := Layout(t)
	var b strings.Builder
	b.WriteString(t.Title)
	b.WriteString("\n  ")
	b.WriteString(header)
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString("  ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func line(cells []string, widths []int) string {
	parts := make([]string, 0, len(cells))
	for i, c := range cells {
		if i >= len(widths) {
			break
		}
		c = runewidth.Truncate(c, maxCellWidth, "…")
		parts = append(parts, runewidth.FillRight(c, widths[i]))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
