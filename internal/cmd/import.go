// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import books from a JSON or YAML file",
		Long: `Add every book listed in a file to the library.

Supported files:
- JSON library files (as written by the json backend or 'export')
- YAML lists with title, author, publication_year, genre, read_status,
  rating and summary keys

Every book is checked before any is added.

Examples:
  arc-bookshelf import ~/old/library.json
  arc-bookshelf import books.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandHome(args[0])

			books, err := readBooksFile(path)
			if err != nil {
				return err
			}
			for i, b := range books {
				if err := validateBook(b); err != nil {
					return fmt.Errorf("book %d (%q): %w", i+1, b.Title, err)
				}
			}

			w := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(w, "%d book(s) in %s are valid (dry run, nothing added)\n", len(books), path)
				return nil
			}

			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range books {
				if err := store.Add(cmd.Context(), b); err != nil {
					return fmt.Errorf("add %q: %w", b.Title, err)
				}
			}
			fmt.Fprintf(w, "Imported %d book(s) from %s\n", len(books), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without adding anything")
	return cmd
}

// readBooksFile decodes a list of books, choosing YAML or JSON by extension.
func readBooksFile(path string) ([]library.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var books []library.Book
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return books, nil
}
