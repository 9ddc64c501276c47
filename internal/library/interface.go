// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import "context"

// LibraryStore is the interface for persisting and querying books.
// Implementations may use a JSON snapshot, SQL, or in-memory structures;
// the observable behavior is the same for all of them.
type LibraryStore interface {
	// Add appends a book and persists it immediately.
	Add(ctx context.Context, b Book) error
	// Remove deletes every book whose title equals title, ignoring case,
	// and returns the books that remain.
	Remove(ctx context.Context, title string) ([]Book, error)
	// Search returns books whose field contains query, ignoring case.
	Search(ctx context.Context, query string, field Field) ([]Book, error)
	// ListAll returns every book. Order is adapter-defined.
	ListAll(ctx context.Context) ([]Book, error)
	// Statistics returns the total count and the percentage read.
	Statistics(ctx context.Context) (Stats, error)
	// Recommend returns books whose genre equals genre, ignoring case.
	Recommend(ctx context.Context, genre string) ([]Book, error)

	Close() error
}

var (
	_ LibraryStore = (*Store)(nil)
	_ LibraryStore = (*JSONStore)(nil)
	_ LibraryStore = (*MemoryStore)(nil)
)
