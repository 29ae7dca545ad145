package termcolor

import (
	"fmt"
	"io"
	"strings"
)

// VisibleLen returns the display width of s, excluding ANSI escape sequences.
func VisibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
		case r == '\033':
			inEsc = true
		default:
			n++
		}
	}
	return n
}

// Table pads columns by visible width so colored cells line up.
type Table struct {
	header []string
	rows   [][]string
	gap    int
}

// NewTable creates a Table with the given inter-column gap (number of spaces).
func NewTable(gap int) *Table {
	return &Table{gap: gap}
}

// SetHeader sets the first row. It is only rendered when the table has rows.
func (t *Table) SetHeader(cells ...string) {
	t.header = cells
}

// AddRow appends a row of cells to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the formatted table to w.
func (t *Table) Render(w io.Writer) {
	if len(t.rows) == 0 {
		return
	}

	all := t.rows
	if len(t.header) > 0 {
		all = append([][]string{t.header}, t.rows...)
	}

	widths := columnWidths(all)
	pad := strings.Repeat(" ", t.gap)
	for _, row := range all {
		writeRow(w, row, widths, pad)
	}
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], VisibleLen(cell))
		}
	}
	return widths
}

// The last cell is never padded.
func writeRow(w io.Writer, row []string, widths []int, pad string) {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteString(pad)
		}
		b.WriteString(cell)
		if i < len(row)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-VisibleLen(cell)))
		}
	}
	fmt.Fprintln(w, b.String())
}
