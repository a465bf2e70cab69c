// Package table renders rows of data as a terminal table or as markdown.
package table

import (
	"fmt"
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

	// Row returns the cells for row i, or nil to skip the row.
	// Wrap a value in Bold{} to emphasise it.
	Row(i int) []any
}

// Bold marks a cell value for emphasis
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render returns the table for a terminal. The table is narrowed to the
// terminal width when stdout is a terminal and the table is wider.
func Render(data Data) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i := range data.Len() {
		if row := data.Row(i); row != nil {
			t.Row(cells(row, len(row), func(s string) string {
				return boldStyle.Render(s)
			})...)
		}
	}

	result := t.Render()
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 && widest(result) > width {
		result = t.Width(width).Render()
	}
	return result
}

// Markdown returns the table as GitHub-flavoured markdown
func Markdown(data Data) string {
	header := data.Header()
	if len(header) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("| " + strings.Join(header, " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat("---|", len(header)))
	for i := range data.Len() {
		if row := data.Row(i); row != nil {
			buf.WriteString("\n| " + strings.Join(cells(row, len(header), func(s string) string {
				return "**" + s + "**"
			}), " | ") + " |")
		}
	}
	return buf.String()
}

// Truncate shortens s to max runes on a single line
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// cells formats n cells of the row, padding missing cells
func cells(row []any, n int, bold func(string) string) []string {
	result := make([]string, n)
	for i := range result {
		if i >= len(row) {
			result[i] = "-"
		} else if b, ok := row[i].(Bold); ok {
			if result[i] = format(b.Value); result[i] != "-" {
				result[i] = bold(result[i])
			}
		} else {
			result[i] = format(row[i])
		}
	}
	return result
}

func format(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case int:
		if v == 0 {
			return "-"
		}
	}
	if s := fmt.Sprint(v); s != "" {
		return s
	}
	return "-"
}

func widest(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}
