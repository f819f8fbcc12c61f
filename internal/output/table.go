package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// column is one table column.
type column struct {
	header string
	width  int
	right  bool
}

// Table renders aligned rows under a styled header and rule.
type Table struct {
	cols []column
	rows [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	t := &Table{cols: make([]column, len(headers))}
	for i, h := range headers {
		t.cols[i] = column{header: h, width: visualLen(h)}
	}
	return t
}

// AlignRight right-aligns the given columns, typically numbers and money.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.cols) {
			t.cols[c].right = true
		}
	}
	return t
}

// AddRow appends a row. Missing cells are blank and extra cells are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.cols))
	copy(row, values)
	for i, cell := range row {
		t.cols[i].width = max(t.cols[i].width, visualLen(cell))
	}
	t.rows = append(t.rows, row)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.cols) == 0 {
		return ""
	}

	var sb strings.Builder
	header := make([]string, len(t.cols))
	rule := make([]string, len(t.cols))
	for i, c := range t.cols {
		header[i] = StyleHeader.Render(t.align(i, c.header))
		rule[i] = StyleMuted.Render(strings.Repeat("─", c.width))
	}
	t.writeLine(&sb, header)
	t.writeLine(&sb, rule)

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = t.align(i, cell)
		}
		t.writeLine(&sb, cells)
	}
	return sb.String()
}

func (t *Table) writeLine(sb *strings.Builder, cells []string) {
	sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	sb.WriteByte('\n')
}

func (t *Table) align(col int, s string) string {
	c := t.cols[col]
	if c.right {
		return padLeft(s, c.width)
	}
	return pad(s, c.width)
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to w.
func (t *Table) Print(w io.Writer) {
	fmt.Fprint(w, t.Render())
}

// visualLen is the printed width of s, ignoring ANSI escapes and counting
// multi-byte runes such as "ç" once.
func visualLen(s string) int {
	return lipgloss.Width(s)
}

// pad right-pads s to the given visual width.
func pad(s string, width int) string {
	if n := visualLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft left-pads s to the given visual width.
func padLeft(s string, width int) string {
	if n := visualLen(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
