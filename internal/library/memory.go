// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

// MemoryStore implements LibraryStore without persistence.
type MemoryStore struct {
	collection
}

// NewMemoryStore creates a store seeded with a copy of books.
func NewMemoryStore(books ...Book) *MemoryStore {
	s := &MemoryStore{}
	s.books = cloneBooks(books)
	return s
}

func (s *MemoryStore) Close() error { return nil }
