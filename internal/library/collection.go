// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// collection holds books in insertion order and implements the query side
// of LibraryStore over a slice. persist, when set, is called with the
// candidate slice before a mutation is committed; a failed persist leaves
// the collection unchanged.
type collection struct {
	mu      sync.RWMutex
	books   []Book
	persist func([]Book) error
}

func (c *collection) Add(_ context.Context, b Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Book, 0, len(c.books)+1)
	next = append(next, c.books...)
	next = append(next, b.Clone())
	return c.commit(next)
}

func (c *collection) Remove(_ context.Context, title string) ([]Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Book, 0, len(c.books))
	for _, b := range c.books {
		if !strings.EqualFold(b.Title, title) {
			next = append(next, b)
		}
	}
	if err := c.commit(next); err != nil {
		return nil, err
	}
	return cloneBooks(c.books), nil
}

func (c *collection) Search(_ context.Context, query string, field Field) ([]Book, error) {
	if !field.known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(query)
	out := []Book{}
	for _, b := range c.books {
		v, err := field.valueOf(b)
		if err != nil {
			return nil, err
		}
		if strings.Contains(strings.ToLower(v), q) {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (c *collection) ListAll(_ context.Context) ([]Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneBooks(c.books), nil
}

func (c *collection) Statistics(_ context.Context) (Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	read := 0
	for _, b := range c.books {
		if b.ReadStatus {
			read++
		}
	}
	return newStats(len(c.books), read), nil
}

func (c *collection) Recommend(_ context.Context, genre string) ([]Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []Book{}
	for _, b := range c.books {
		if strings.EqualFold(b.Genre, genre) {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

// commit must be called with mu held.
func (c *collection) commit(next []Book) error {
	if c.persist != nil {
		if err := c.persist(next); err != nil {
			return err
		}
	}
	c.books = next
	return nil
}

func cloneBooks(books []Book) []Book {
	out := make([]Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}
