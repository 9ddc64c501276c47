// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all books in the library",
		Long: `List every book in the library.

Examples:
  arc-bookshelf list
  arc-bookshelf list --long     # include full summaries
  arc-bookshelf list -o json    # machine-readable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			books, err := store.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(books) == 0 && !a.format.Structured() {
				fmt.Fprintln(w, "Your library is empty. Start adding books!")
				fmt.Fprintln(w, "Use 'arc-bookshelf add' to add a book.")
				return nil
			}
			if err := output.WriteBooks(w, a.format, books, long); err != nil {
				return err
			}
			if !a.format.Structured() {
				fmt.Fprintf(w, "\nTotal: %d book(s)\n", len(books))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show full summaries")
	return cmd
}
