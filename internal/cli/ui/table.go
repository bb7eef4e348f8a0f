// Package ui renders terminal output for the armgen commands.
package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Style is the color of a table cell
type Style int

const (
	StylePlain Style = iota
	StyleGood
	StyleMuted
	StyleWarn
)

// Cell is a table cell with a style
type Cell struct {
	Text  string
	Style Style
}

// Plain returns an unstyled cell
func Plain(text string) Cell {
	return Cell{Text: text}
}

// Table is a column-aligned table with a highlighted header row
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]Cell
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	noColor := false
	if opts != nil {
		noColor = opts.NoColor
	}

	return &Table{
		writer:  w,
		headers: headers,
		noColor: noColor,
	}
}

// AddRow adds a row of plain cells
func (t *Table) AddRow(cells ...string) {
	row := make([]Cell, len(cells))
	for i, c := range cells {
		row[i] = Plain(c)
	}
	t.rows = append(t.rows, row)
}

// AddCells adds a row of styled cells
func (t *Table) AddCells(cells ...Cell) {
	t.rows = append(t.rows, cells)
}

// Render renders the table to the writer. Cells beyond the header count are
// dropped.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell.Text))
			}
		}
	}

	header := t.color(color.Bold, color.FgCyan)
	for i, h := range t.headers {
		header.Fprint(t.writer, padRight(h, widths[i]))
		t.gap(i, len(t.headers))
	}
	fmt.Fprintln(t.writer)

	gray := t.color(color.FgHiBlack)
	for i, width := range widths {
		gray.Fprint(t.writer, strings.Repeat("─", width))
		t.gap(i, len(widths))
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		n := min(len(row), len(widths))
		for i := 0; i < n; i++ {
			t.styled(row[i].Style).Fprint(t.writer, padRight(row[i].Text, widths[i]))
			t.gap(i, n)
		}
		fmt.Fprintln(t.writer)
	}
}

func (t *Table) gap(i, n int) {
	if i < n-1 {
		fmt.Fprint(t.writer, "  ")
	}
}

func (t *Table) styled(s Style) *color.Color {
	switch s {
	case StyleGood:
		return t.color(color.FgGreen)
	case StyleMuted:
		return t.color(color.FgHiBlack)
	case StyleWarn:
		return t.color(color.FgYellow)
	default:
		return t.color(color.Reset)
	}
}

func (t *Table) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	}
	return c
}

// padRight pads s with spaces to width runes
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Success prints a green check line
func Success(w io.Writer, noColor bool, format string, args ...interface{}) {
	status(w, noColor, color.FgGreen, "✓", format, args...)
}

// Warning prints a yellow warning line
func Warning(w io.Writer, noColor bool, format string, args ...interface{}) {
	status(w, noColor, color.FgYellow, "!", format, args...)
}

func status(w io.Writer, noColor bool, attr color.Attribute, symbol, format string, args ...interface{}) {
	c := color.New(attr)
	if noColor {
		c.DisableColor()
	}
	c.Fprint(w, symbol+" ")
	fmt.Fprintf(w, format+"\n", args...)
}
