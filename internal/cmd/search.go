// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var by string
	var long bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title or author",
		Long: `Search the library for books whose title or author contains the query.
Matching ignores case.

Examples:
  arc-bookshelf search dune
  arc-bookshelf search har --by author
  arc-bookshelf search "the" --long`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := library.ParseField(by)
			if err != nil {
				return err
			}

			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			books, err := store.Search(cmd.Context(), args[0], field)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(books) == 0 && !a.format.Structured() {
				fmt.Fprintln(w, "No matching books found.")
				return nil
			}
			return output.WriteBooks(w, a.format, books, long)
		},
	}

	cmd.Flags().StringVarP(&by, "by", "b", string(library.FieldTitle), "Field to search: title, author")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show full summaries")
	return cmd
}
