// Package table renders rows of values as a terminal table backed by lipgloss,
// or as plain text when the output is not a terminal.
package table

import (
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Data is implemented by anything which can be rendered as a table
type Data interface {
	// Header returns the column labels
	Header() []string

	// Len returns the number of rows
	Len() int

	// Row returns the cell values for row i, or nil to skip the row
	Row(i int) []any
}

// Bold wraps a cell value so it is highlighted
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

const (
	empty = "-"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Width returns the terminal width of w, or zero if w is not a terminal
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return 0
}

// Render returns a bordered table. When width is positive and the table
// would be wider, columns are wrapped to fit.
func Render(data Data, width int) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, cells := range rows(data, Cell) {
		t.Row(cells...)
	}

	result := t.Render()
	if width > 0 && widest(result) > width {
		t.Width(width)
		result = t.Render()
	}
	return result
}

// Plain returns the table as tab-separated lines without styling
func Plain(data Data) string {
	var buf strings.Builder
	buf.WriteString(strings.Join(data.Header(), "\t"))
	for _, cells := range rows(data, plainCell) {
		buf.WriteString("\n")
		buf.WriteString(strings.Join(cells, "\t"))
	}
	return buf.String()
}

// Write renders the table to w, styled if w is a terminal
func Write(w io.Writer, data Data) error {
	var result string
	if width := Width(w); width > 0 {
		result = Render(data, width)
	} else {
		result = Plain(data)
	}
	_, err := fmt.Fprintln(w, result)
	return err
}

// Truncate shortens s to max runes, collapsing newlines
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); max > 0 && len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

// Cell converts a value to its display form. Empty values are shown as "-"
func Cell(v any) string {
	if b, ok := v.(Bold); ok {
		return boldStyle.Render(Cell(b.Value))
	}
	return plainCell(v)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func plainCell(v any) string {
	switch val := v.(type) {
	case nil:
		return empty
	case Bold:
		return plainCell(val.Value)
	case string:
		if val == "" {
			return empty
		}
		return val
	case []string:
		if len(val) == 0 {
			return empty
		}
		return strings.Join(val, ", ")
	default:
		if s := fmt.Sprint(val); s != "" {
			return s
		}
		return empty
	}
}

func rows(data Data, fn func(any) string) [][]string {
	result := make([][]string, 0, data.Len())
	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fn(v)
		}
		result = append(result, cells)
	}
	return result
}

func widest(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		n = max(n, lipgloss.Width(line))
	}
	return n
}
