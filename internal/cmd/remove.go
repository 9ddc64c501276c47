// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a book by title",
		Long: `Remove books from the library by title. The match ignores case, and
every book with that title is removed.

Examples:
  arc-bookshelf remove "Dune"
  arc-bookshelf duplicates      # check which titles appear more than once`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			store, err := a.library(ctx)
			if err != nil {
				return err
			}
			before, err := store.ListAll(ctx)
			if err != nil {
				return err
			}
			if len(before) == 0 && !a.format.Structured() {
				fmt.Fprintln(w, "No books in the library yet.")
				return nil
			}

			remaining, err := store.Remove(ctx, title)
			if err != nil {
				return fmt.Errorf("remove book: %w", err)
			}
			if a.format.Structured() {
				return output.Encode(w, a.format, remaining)
			}

			switch removed := len(before) - len(remaining); {
			case removed == 0:
				fmt.Fprintf(w, "No book titled %q found.\n", title)
			case removed == 1:
				fmt.Fprintf(w, "%q has been removed!\n", title)
			default:
				fmt.Fprintf(w, "%q has been removed! (%d books with this title)\n", title, removed)
			}
			return nil
		},
	}
	return cmd
}
