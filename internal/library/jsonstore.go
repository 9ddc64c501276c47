// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// JSONStore implements LibraryStore on a JSON snapshot file. The whole
// collection is held in memory and the file is rewritten on every mutation.
type JSONStore struct {
	collection
	path string
}

// OpenJSONStore loads the snapshot at path. A missing, empty or unparseable
// snapshot yields an empty library; only I/O errors other than "not exist"
// are returned.
func OpenJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	s.persist = s.save
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the snapshot location.
func (s *JSONStore) Path() string { return s.path }

// Reload replaces the in-memory collection with the snapshot on disk.
func (s *JSONStore) Reload() error {
	books, err := readSnapshot(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.books = books
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error { return nil }

func readSnapshot(path string) ([]Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Book{}, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Book{}, nil
	}

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		slog.Warn("snapshot unreadable, starting with an empty library", "path", path, "err", err)
		return []Book{}, nil
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// save writes books to a temp file next to the snapshot and renames it into
// place.
func (s *JSONStore) save(books []Book) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if books == nil {
		books = []Book{}
	}
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	slog.Debug("snapshot saved", "path", s.path, "books", len(books))
	return nil
}
