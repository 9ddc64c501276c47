// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Store provides persistence for the library using SQL.
type Store struct {
	db *sql.DB
	q  queries
}

// NewStore creates a library store over db and creates the books table if
// it does not exist. The store owns db from here on; Close closes it.
func NewStore(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	s := &Store{db: db, q: buildQueries(dialect)}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.q.createTable)
	if err == nil {
		slog.Debug("books table ready")
	}
	return err
}

// Add inserts a book.
func (s *Store) Add(ctx context.Context, b Book) error {
	var rating sql.NullInt64
	if b.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*b.Rating), Valid: true}
	}
	var summary sql.NullString
	if b.Summary != nil {
		summary = sql.NullString{String: *b.Summary, Valid: true}
	}
	readStatus := 0
	if b.ReadStatus {
		readStatus = 1
	}

	_, err := s.db.ExecContext(ctx, s.q.insert,
		b.Title, b.Author, b.PublicationYear, b.Genre, readStatus, rating, summary)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Remove deletes all books with a matching title and returns the rest.
func (s *Store) Remove(ctx context.Context, title string) ([]Book, error) {
	if _, err := s.db.ExecContext(ctx, s.q.deleteTitle, title); err != nil {
		return nil, fmt.Errorf("delete books: %w", err)
	}
	return s.ListAll(ctx)
}

// Search returns books whose field contains query.
func (s *Store) Search(ctx context.Context, query string, field Field) ([]Book, error) {
	stmt, ok := s.q.search[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return s.queryBooks(ctx, stmt, query)
}

// ListAll returns every book in id order.
func (s *Store) ListAll(ctx context.Context) ([]Book, error) {
	return s.queryBooks(ctx, s.q.listAll)
}

// Statistics aggregates the count and read percentage in one query.
func (s *Store) Statistics(ctx context.Context) (Stats, error) {
	var total, read int64
	if err := s.db.QueryRowContext(ctx, s.q.stats).Scan(&total, &read); err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return newStats(int(total), int(read)), nil
}

// Recommend returns books whose genre matches exactly, ignoring case.
func (s *Store) Recommend(ctx context.Context, genre string) ([]Book, error) {
	return s.queryBooks(ctx, s.q.recommend, genre)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func scanBook(rows *sql.Rows) (Book, error) {
	var b Book
	var readStatus int64
	var rating sql.NullInt64
	var summary sql.NullString

	if err := rows.Scan(&b.Title, &b.Author, &b.PublicationYear, &b.Genre, &readStatus, &rating, &summary); err != nil {
		return Book{}, fmt.Errorf("scan book: %w", err)
	}

	b.ReadStatus = readStatus != 0
	if rating.Valid {
		r := int(rating.Int64)
		b.Rating = &r
	}
	if summary.Valid {
		b.Summary = &summary.String
	}
	return b, nil
}
