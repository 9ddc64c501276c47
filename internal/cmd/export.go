// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string // "json", "yaml"
		dest   string // file path or "-" for stdout
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library to JSON or YAML",
		Long: `Write every book to a file or stdout.

JSON exports use the same layout as the json storage backend, so they can be
used directly as a library file or re-imported with 'import'.

Examples:
  arc-bookshelf export > backup.json
  arc-bookshelf export --format yaml --output-file books.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			if !f.Structured() {
				return fmt.Errorf("unsupported export format: %s (choose json, yaml)", format)
			}

			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			books, err := store.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}

			var buf bytes.Buffer
			if err := output.Encode(&buf, f, books); err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}

			if dest == "-" || dest == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d book(s) to %s\n", len(books), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml")
	cmd.Flags().StringVar(&dest, "output-file", "-", "Output file (default: stdout)")
	return cmd
}
