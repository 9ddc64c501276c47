// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":      FormatTable,
		"table": FormatTable,
		"JSON":  FormatJSON,
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestTableRender(t *testing.T) {
	tbl := NewTable("Name", "Count")
	tbl.AddRow("a", "1")
	tbl.AddRow("longer", "22", "dropped")
	tbl.AddRow("日本")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, strings.Join([]string{
		"Name    Count",
		"------  -----",
		"a       1",
		"longer  22",
		"日本",
		"",
	}, "\n"), buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}

func TestWriteBooksTable(t *testing.T) {
	books := []library.Book{
		library.NewBook("Dune", "Frank Herbert", 1965, "Sci-Fi", true, 5, "Desert planet saga"),
		{Title: "Bare", Author: "Anon", PublicationYear: 1900, Genre: "Misc"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBooks(&buf, FormatTable, books, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Title"))
	assert.Contains(t, lines[2], "5/5")
	assert.Contains(t, lines[2], "yes")
	assert.Contains(t, lines[3], "N/A")
	assert.Contains(t, lines[3], "No summary available")
}

func TestWriteBooksLong(t *testing.T) {
	books := []library.Book{library.NewBook("Dune", "Frank Herbert", 1965, "Sci-Fi", true, 5, "Desert planet saga")}
	var buf bytes.Buffer
	require.NoError(t, WriteBooks(&buf, FormatTable, books, true))
	assert.Equal(t, "\"Dune\" by Frank Herbert (1965) - Sci-Fi - 5/5\n    Summary: Desert planet saga\n", buf.String())
}

func TestWriteBooksJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBooks(&buf, FormatJSON, nil, false))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteBooks(&buf, FormatJSON, []library.Book{{Title: "Bare"}}, false))
	assert.NotContains(t, buf.String(), "Rating")
	assert.Contains(t, buf.String(), `"Publication Year": 0`)
}

func TestWriteBooksYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBooks(&buf, FormatYAML, []library.Book{library.NewBook("Dune", "", 1965, "", false, 3, "")}, false))
	assert.Contains(t, buf.String(), "title: Dune")
	assert.Contains(t, buf.String(), "rating: 3")
}

func TestWriteStats(t *testing.T) {
	books := library.NewMemoryStore(
		library.NewBook("A", "", 0, "", true, 0, ""),
		library.NewBook("B", "", 0, "", false, 0, ""),
		library.NewBook("C", "", 0, "", false, 0, ""),
	)
	stats, err := books.Statistics(t.Context())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, FormatTable, stats))
	assert.Contains(t, buf.String(), "Total books:     3")
	assert.Contains(t, buf.String(), "Percentage read: 33.33%")

	buf.Reset()
	require.NoError(t, WriteStats(&buf, FormatJSON, stats))
	assert.Contains(t, buf.String(), `"total": 3`)
	assert.Contains(t, buf.String(), `"read": 1`)
}
