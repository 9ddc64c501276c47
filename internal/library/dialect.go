// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavor used by Store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q (choose sqlite or postgres)", name)
	}
}

const bookColumns = "title, author, year, genre, read_status, rating, summary"

// searchColumns is the closed mapping from Field to column name. Only these
// constants are ever spliced into query text.
var searchColumns = map[Field]string{
	FieldTitle:  "title",
	FieldAuthor: "author",
}

// queries holds the fixed statements for one dialect.
type queries struct {
	createTable string
	insert      string
	deleteTitle string
	listAll     string
	recommend   string
	stats       string
	search      map[Field]string
}

func buildQueries(d Dialect) queries {
	// SQLite's lower() folds ASCII only; unicode_lower is registered by
	// internal/db for every SQLite connection.
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	fold := "unicode_lower"
	contains := "instr(" + fold + "(%s), " + fold + "(?)) > 0"
	if d == DialectPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
		fold = "lower"
		contains = "strpos(" + fold + "(%s), " + fold + "(?)) > 0"
	}

	selectBooks := "SELECT " + bookColumns + " FROM books"
	q := queries{
		createTable: `CREATE TABLE IF NOT EXISTS books (
		` + idColumn + `,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		year INTEGER NOT NULL,
		genre TEXT NOT NULL,
		read_status INTEGER NOT NULL DEFAULT 0,
		rating INTEGER,
		summary TEXT
	)`,
		insert:      "INSERT INTO books (" + bookColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?)",
		deleteTitle: "DELETE FROM books WHERE " + fold + "(title) = " + fold + "(?)",
		listAll:     selectBooks + " ORDER BY id",
		recommend:   selectBooks + " WHERE " + fold + "(genre) = " + fold + "(?) ORDER BY id",
		stats:       "SELECT COUNT(*), COALESCE(SUM(CASE WHEN read_status <> 0 THEN 1 ELSE 0 END), 0) FROM books",
		search:      make(map[Field]string, len(searchColumns)),
	}
	for f, col := range searchColumns {
		q.search[f] = selectBooks + " WHERE " + fmt.Sprintf(contains, col) + " ORDER BY id"
	}

	if d == DialectPostgres {
		q.insert = rebind(q.insert)
		q.deleteTitle = rebind(q.deleteTitle)
		q.recommend = rebind(q.recommend)
		for f, s := range q.search {
			q.search[f] = rebind(s)
		}
	}
	return q
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
