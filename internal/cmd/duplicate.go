// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newDuplicatesCmd(a *app) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Detect duplicate or similar titles",
		Long: `Scan the library for titles that appear more than once, ignoring case.
'remove' deletes all of them at once, so check here first.

Titles that are not identical but share most of their words are listed as
similar pairs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			books, err := store.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}

			report := findDuplicates(books, threshold)
			w := cmd.OutOrStdout()
			if a.format.Structured() {
				return output.Encode(w, a.format, report)
			}
			return writeDuplicates(w, report, threshold)
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.7, "Similarity threshold for distinct titles (0-1)")
	return cmd
}

type titleGroup struct {
	Title string         `json:"title" yaml:"title"`
	Books []library.Book `json:"books" yaml:"books"`
}

type similarPair struct {
	TitleA string  `json:"title_a" yaml:"title_a"`
	TitleB string  `json:"title_b" yaml:"title_b"`
	Score  float64 `json:"score" yaml:"score"`
}

type duplicateReport struct {
	SameTitle []titleGroup  `json:"same_title" yaml:"same_title"`
	Similar   []similarPair `json:"similar" yaml:"similar"`
}

func findDuplicates(books []library.Book, threshold float64) duplicateReport {
	report := duplicateReport{SameTitle: []titleGroup{}, Similar: []similarPair{}}

	// Group by case-folded title, keeping first-seen order.
	var order []string
	groups := make(map[string]*titleGroup)
	for _, b := range books {
		key := strings.ToLower(b.Title)
		g, ok := groups[key]
		if !ok {
			g = &titleGroup{Title: b.Title}
			groups[key] = g
			order = append(order, key)
		}
		g.Books = append(g.Books, b)
	}
	for _, key := range order {
		if g := groups[key]; len(g.Books) > 1 {
			report.SameTitle = append(report.SameTitle, *g)
		}
	}

	// Compare each pair of distinct titles.
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := groups[order[i]].Title, groups[order[j]].Title
			if sim := titleSimilarity(a, b); sim >= threshold {
				report.Similar = append(report.Similar, similarPair{TitleA: a, TitleB: b, Score: sim})
			}
		}
	}
	sort.SliceStable(report.Similar, func(i, j int) bool {
		return report.Similar[i].Score > report.Similar[j].Score
	})
	return report
}

func writeDuplicates(w io.Writer, r duplicateReport, threshold float64) error {
	if len(r.SameTitle) == 0 && len(r.Similar) == 0 {
		_, err := fmt.Fprintf(w, "No duplicates found (threshold %.2f)\n", threshold)
		return err
	}

	if len(r.SameTitle) > 0 {
		fmt.Fprintf(w, "Titles stored more than once (%d):\n\n", len(r.SameTitle))
		for _, g := range r.SameTitle {
			fmt.Fprintf(w, "%q x%d\n", g.Title, len(g.Books))
			for _, b := range g.Books {
				fmt.Fprintf(w, "    %s\n", output.BookLine(b))
			}
		}
		fmt.Fprintln(w)
	}
	if len(r.Similar) > 0 {
		fmt.Fprintf(w, "Similar titles (%d):\n\n", len(r.Similar))
		for i, p := range r.Similar {
			fmt.Fprintf(w, "[%d] Score: %.2f\n", i+1, p.Score)
			fmt.Fprintf(w, "    A: %s\n", output.Truncate(p.TitleA, 60))
			fmt.Fprintf(w, "    B: %s\n", output.Truncate(p.TitleB, 60))
		}
	}
	return nil
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// titleSimilarity is the Jaccard index of the words longer than two
// characters in a and b, ignoring case and punctuation.
func titleSimilarity(a, b string) float64 {
	setA := titleWords(a)
	setB := titleWords(b)

	intersection := 0
	for word := range setA {
		if setB[word] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func titleWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, word := range strings.Fields(punctuation.ReplaceAllString(strings.ToLower(s), "")) {
		if len(word) > 2 {
			words[word] = true
		}
	}
	return words
}
