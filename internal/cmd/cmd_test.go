// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line against store and returns stdout.
func run(t *testing.T, store library.LibraryStore, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	root := NewRootCmd(func(context.Context, *config.Config) (library.LibraryStore, error) {
		return store, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, store library.LibraryStore, args ...string) string {
	t.Helper()
	out, err := run(t, store, args...)
	require.NoError(t, err, args)
	return out
}

func titles(books []library.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestAddAndList(t *testing.T) {
	store := library.NewMemoryStore()

	out := mustRun(t, store, "add", "-t", "Dune", "-a", "Frank Herbert", "-y", "1965", "-g", "Sci-Fi", "-r", "--rating", "5", "-s", "Desert planet saga")
	assert.Equal(t, "\"Dune\" has been added to your library!\n", out)

	out = mustRun(t, store, "list")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Frank Herbert")
	assert.Contains(t, out, "5/5")
	assert.Contains(t, out, "\nTotal: 1 book(s)\n")

	out = mustRun(t, store, "list", "--long")
	assert.Contains(t, out, "\"Dune\" by Frank Herbert (1965) - Sci-Fi - 5/5\n    Summary: Desert planet saga\n")
}

func TestListEmpty(t *testing.T) {
	out := mustRun(t, library.NewMemoryStore(), "list")
	assert.Equal(t, "Your library is empty. Start adding books!\nUse 'arc-bookshelf add' to add a book.\n", out)
}

func TestListJSON(t *testing.T) {
	store := library.NewMemoryStore(library.Book{Title: "Bare", Author: "Anon", PublicationYear: 1900, Genre: "Misc"})

	out := mustRun(t, store, "list", "-o", "json")
	var books []library.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	require.Len(t, books, 1)
	assert.Nil(t, books[0].Rating)
	assert.NotContains(t, out, "Total:")

	out = mustRun(t, library.NewMemoryStore(), "list", "-o", "json")
	assert.Equal(t, "[]\n", out)
}

func TestAddRejectsOutOfRangeInput(t *testing.T) {
	store := library.NewMemoryStore()

	_, err := run(t, store, "add", "-t", "Dune", "--rating", "9")
	assert.ErrorContains(t, err, "rating must be at most 5")

	_, err = run(t, store, "add", "-t", "Dune", "-y", "2200")
	assert.ErrorContains(t, err, "publication year must be at most 2100")

	_, err = run(t, store, "add", "-t", "Dune", "-y", "-5")
	assert.ErrorContains(t, err, "publication year must be at least 0")

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRemoveMessages(t *testing.T) {
	out := mustRun(t, library.NewMemoryStore(), "remove", "Dune")
	assert.Equal(t, "No books in the library yet.\n", out)

	store := library.NewMemoryStore(
		library.NewBook("Dune", "Frank Herbert", 1965, "Sci-Fi", true, 5, ""),
		library.NewBook("dune", "Someone Else", 2000, "Sci-Fi", false, 2, ""),
		library.NewBook("Emma", "Jane Austen", 1815, "Classic", false, 4, ""),
	)

	out = mustRun(t, store, "remove", "Missing")
	assert.Equal(t, "No book titled \"Missing\" found.\n", out)

	out = mustRun(t, store, "remove", "DUNE")
	assert.Equal(t, "\"DUNE\" has been removed! (2 books with this title)\n", out)

	out = mustRun(t, store, "remove", "emma")
	assert.Equal(t, "\"emma\" has been removed!\n", out)
}

func TestRemoveStructuredReturnsRemaining(t *testing.T) {
	store := library.NewMemoryStore(
		library.NewBook("Dune", "", 0, "", false, 0, ""),
		library.NewBook("Emma", "", 0, "", false, 0, ""),
	)
	out := mustRun(t, store, "remove", "dune", "-o", "json")

	var remaining []library.Book
	require.NoError(t, json.Unmarshal([]byte(out), &remaining))
	assert.Equal(t, []string{"Emma"}, titles(remaining))
}

func TestSearch(t *testing.T) {
	store := library.NewMemoryStore(
		library.NewBook("Dune", "Frank Herbert", 1965, "Sci-Fi", true, 5, ""),
		library.NewBook("Harry Potter", "J.K. Rowling", 1997, "Fantasy", false, 4, ""),
	)

	out := mustRun(t, store, "search", "UNE")
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Harry Potter")

	out = mustRun(t, store, "search", "rowling", "--by", "author")
	assert.Contains(t, out, "Harry Potter")
	assert.NotContains(t, out, "Dune")

	out = mustRun(t, store, "search", "zzz")
	assert.Equal(t, "No matching books found.\n", out)

	_, err := run(t, store, "search", "x", "--by", "genre")
	assert.ErrorIs(t, err, library.ErrUnknownField)
}

func TestRecommend(t *testing.T) {
	store := library.NewMemoryStore(
		library.NewBook("Dune", "Frank Herbert", 1965, "Sci-Fi", true, 5, ""),
		library.NewBook("Ender's Game", "Orson Scott Card", 1985, "Sci-Fi Adventure", false, 4, ""),
	)

	out := mustRun(t, store, "recommend", "sci-fi", "-o", "json")
	var books []library.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	assert.Equal(t, []string{"Dune"}, titles(books))

	out = mustRun(t, store, "recommend", "Horror")
	assert.Equal(t, "No recommendations found for the genre 'Horror'. Try adding books in this category!\n", out)
}

func TestStats(t *testing.T) {
	out := mustRun(t, library.NewMemoryStore(), "stats")
	assert.Contains(t, out, "Total books:     0")
	assert.Contains(t, out, "Percentage read: 0.00%")

	store := library.NewMemoryStore(
		library.NewBook("A", "", 0, "", true, 0, ""),
		library.NewBook("B", "", 0, "", false, 0, ""),
	)
	out = mustRun(t, store, "stats", "-o", "yaml")
	assert.Contains(t, out, "total: 2")
	assert.Contains(t, out, "percent_read: 50")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, library.NewMemoryStore(), "list", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestImportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- title: Dune
  author: Frank Herbert
  publication_year: 1965
  genre: Sci-Fi
  read_status: true
  rating: 5
- title: Emma
  author: Jane Austen
  publication_year: 1815
  genre: Classic
`), 0o644))

	store := library.NewMemoryStore()
	out := mustRun(t, store, "import", path, "--dry-run")
	assert.Contains(t, out, "2 book(s)")
	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	out = mustRun(t, store, "import", path)
	assert.Equal(t, "Imported 2 book(s) from "+path+"\n", out)
	all, err = store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Emma"}, titles(all))
	assert.Nil(t, all[1].Rating)
}

func TestImportExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- title: Dune\n  publication_year: 1965\n"), 0o644))

	store := library.NewMemoryStore()
	out := mustRun(t, store, "import", "~/books.yaml")
	assert.Equal(t, "Imported 1 book(s) from "+path+"\n", out)
}

func TestImportRejectsInvalidFileAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
    {"Title": "Fine", "Author": "A", "Publication Year": 2000, "Genre": "G", "Read Status": false},
    {"Title": "Bad", "Author": "B", "Publication Year": 2000, "Genre": "G", "Read Status": false, "Rating": 9}
]`), 0o644))

	store := library.NewMemoryStore()
	_, err := run(t, store, "import", path)
	assert.ErrorContains(t, err, `book 2 ("Bad")`)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = run(t, store, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := library.NewMemoryStore(
		library.NewBook("Dune", "Frank Herbert", 1965, "Sci-Fi", true, 5, "Desert planet saga"),
		library.Book{Title: "Bare", Author: "Anon", PublicationYear: 1900, Genre: "Misc"},
	)
	want, err := src.ListAll(context.Background())
	require.NoError(t, err)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "export."+format)
			out := mustRun(t, src, "export", "--format", format, "--output-file", path)
			assert.Empty(t, out)

			dst := library.NewMemoryStore()
			mustRun(t, dst, "import", path)
			got, err := dst.ListAll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestExportToStdoutIsSnapshotLayout(t *testing.T) {
	store := library.NewMemoryStore(library.NewBook("Dune", "Frank Herbert", 1965, "Sci-Fi", true, 5, "x"))
	out := mustRun(t, store, "export")
	assert.Contains(t, out, "    {\n        \"Title\": \"Dune\",")
	assert.Contains(t, out, `"Publication Year": 1965`)

	_, err := run(t, store, "export", "--format", "table")
	assert.Error(t, err)
}

func TestWatchRequiresJSONStore(t *testing.T) {
	_, err := run(t, library.NewMemoryStore(), "watch")
	assert.ErrorContains(t, err, "json storage backend")
}

func TestOpenerErrorIsReturned(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	boom := errors.New("boom")
	root := NewRootCmd(func(context.Context, *config.Config) (library.LibraryStore, error) {
		return nil, boom
	})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"list"})
	assert.ErrorIs(t, root.ExecuteContext(context.Background()), boom)
}

func TestExecuteClosesStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "library.json")
	closed := false
	open := func(context.Context, *config.Config) (library.LibraryStore, error) {
		s, err := library.OpenJSONStore(path)
		if err != nil {
			return nil, err
		}
		return &closeSpy{LibraryStore: s, closed: &closed}, nil
	}

	args := os.Args
	defer func() { os.Args = args }()
	os.Args = []string{"arc-bookshelf", "stats"}
	require.NoError(t, Execute(context.Background(), open))
	assert.True(t, closed)
}

type closeSpy struct {
	library.LibraryStore
	closed *bool
}

func (c *closeSpy) Close() error {
	*c.closed = true
	return c.LibraryStore.Close()
}
