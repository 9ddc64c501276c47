// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newWebCmd(a *app) *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web UI server",
		Long:  "Start a read-only web interface for browsing, searching and getting recommendations from the library.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.library(ctx)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         fmt.Sprintf("%s:%d", bind, port),
				Handler:      newWebMux(store),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				errc <- srv.ListenAndServe()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Starting arc-bookshelf web server on http://%s\n", srv.Addr)
			fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to serve on")
	cmd.Flags().StringVarP(&bind, "bind", "b", "127.0.0.1", "Address to bind to")

	return cmd
}

func newWebMux(store library.LibraryStore) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleIndex(store))
	mux.HandleFunc("GET /api/books", handleAPIBooks(store))
	mux.HandleFunc("GET /api/search", handleAPISearch(store))
	mux.HandleFunc("GET /api/recommend", handleAPIRecommend(store))
	mux.HandleFunc("GET /api/stats", handleAPIStats(store))
	return mux
}

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"rating": output.RatingText,
}).Parse(`<!DOCTYPE html>
<html>
<head>
	<title>My Digital Library</title>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<style>
		* { box-sizing: border-box; margin: 0; padding: 0; }
		body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 1200px; margin: 0 auto; padding: 20px; }
		h1 { margin-bottom: 20px; color: #2c3e50; }
		form { display: flex; gap: 8px; margin-bottom: 20px; }
		input, select { padding: 8px; font-size: 15px; border: 2px solid #ddd; border-radius: 4px; }
		.stats { display: flex; gap: 20px; margin-bottom: 20px; flex-wrap: wrap; }
		.stat { background: #f8f9fa; padding: 10px 20px; border-radius: 4px; }
		.stat-value { font-size: 24px; font-weight: bold; color: #3498db; }
		.stat-label { font-size: 12px; color: #666; text-transform: uppercase; }
		.books { display: grid; gap: 15px; }
		.book { background: white; border: 1px solid #e0e0e0; border-radius: 8px; padding: 20px; }
		.book-title { font-size: 18px; font-weight: 600; }
		.book-meta { color: #666; font-size: 14px; margin-bottom: 10px; }
		.book-summary { color: #555; font-size: 14px; }
		.empty { text-align: center; padding: 40px; color: #666; }
	</style>
</head>
<body>
	<h1>📚 My Digital Library</h1>

	<div class="stats">
		<div class="stat">
			<div class="stat-value">{{.Stats.Total}}</div>
			<div class="stat-label">Total Books</div>
		</div>
		<div class="stat">
			<div class="stat-value">{{.Stats.PercentLabel}}</div>
			<div class="stat-label">Percentage Read</div>
		</div>
	</div>

	<form method="get" action="/">
		<select name="by">
			<option value="title"{{if eq .By "title"}} selected{{end}}>Title</option>
			<option value="author"{{if eq .By "author"}} selected{{end}}>Author</option>
		</select>
		<input type="text" name="q" value="{{.Query}}" placeholder="Search books...">
		<input type="submit" value="Search">
	</form>
	<form method="get" action="/">
		<input type="text" name="genre" value="{{.Genre}}" placeholder="Genre for recommendations">
		<input type="submit" value="Recommend">
	</form>

	<div class="books">
	{{range .Books}}
		<div class="book">
			<div class="book-title">{{.Title}}</div>
			<div class="book-meta">by {{.Author}} ({{.PublicationYear}}) · {{.Genre}} · {{rating .}}{{if .ReadStatus}} · read{{end}}</div>
			<div class="book-summary">{{.SummaryText}}</div>
		</div>
	{{else}}
		<div class="empty">{{.Empty}}</div>
	{{end}}
	</div>
</body>
</html>
`))

type indexPage struct {
	Stats library.Stats
	Books []library.Book
	Query string
	By    string
	Genre string
	Empty string
}

func handleIndex(store library.LibraryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := indexPage{
			Query: r.URL.Query().Get("q"),
			By:    r.URL.Query().Get("by"),
			Genre: r.URL.Query().Get("genre"),
		}
		if page.By == "" {
			page.By = string(library.FieldTitle)
		}

		var err error
		switch {
		case page.Genre != "":
			page.Books, err = store.Recommend(ctx, page.Genre)
			page.Empty = fmt.Sprintf("No recommendations found for the genre '%s'. Try adding books in this category!", page.Genre)
		case page.Query != "":
			var field library.Field
			field, err = library.ParseField(page.By)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			page.Books, err = store.Search(ctx, page.Query, field)
			page.Empty = "No matching books found."
		default:
			page.Books, err = store.ListAll(ctx)
			page.Empty = "Your library is empty. Start adding books!"
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if page.Stats, err = store.Statistics(ctx); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, page); err != nil {
			slog.Warn("render index", "err", err)
		}
	}
}

func handleAPIBooks(store library.LibraryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := store.ListAll(r.Context())
		writeJSON(w, books, err)
	}
}

func handleAPISearch(store library.LibraryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		by := r.URL.Query().Get("by")
		if by == "" {
			by = string(library.FieldTitle)
		}
		field, err := library.ParseField(by)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		books, err := store.Search(r.Context(), r.URL.Query().Get("q"), field)
		writeJSON(w, books, err)
	}
}

func handleAPIRecommend(store library.LibraryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := store.Recommend(r.Context(), r.URL.Query().Get("genre"))
		writeJSON(w, books, err)
	}
}

func handleAPIStats(store library.LibraryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := store.Statistics(r.Context())
		writeJSON(w, stats, err)
	}
}

func writeJSON(w http.ResponseWriter, v any, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}
