package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Resource", "2021-01-01-preview", "2021-06-01"}, &TableOptions{NoColor: true})

	table.AddCells(Plain("Widgets"), Cell{Text: "yes", Style: StyleGood}, Cell{Text: "-", Style: StyleMuted})
	table.AddRow("Parts", "-", "yes")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Resource  2021-01-01-preview  2021-06-01", lines[0])
	assert.Equal(t, strings.Repeat("─", 8)+"  "+strings.Repeat("─", 18)+"  "+strings.Repeat("─", 10), lines[1])
	assert.Equal(t, "Widgets   yes                 -         ", lines[2])
	assert.Equal(t, "Parts     -                   yes       ", lines[3])
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, nil, nil).Render()
	assert.Empty(t, buf.String())
}

func TestTable_DropsExtraCells(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"A"}, &TableOptions{NoColor: true})
	table.AddRow("x", "overflow")
	table.Render()

	assert.NotContains(t, buf.String(), "overflow")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
	assert.Equal(t, "─ ", padRight("─", 2))
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, true, "wrote %d documents", 2)
	Warning(&buf, true, "no resources visible in %s", "2021-01-01")

	assert.Equal(t, "✓ wrote 2 documents\n! no resources visible in 2021-01-01\n", buf.String())
}
