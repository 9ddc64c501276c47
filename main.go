// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mtreilly/arc-bookshelf/internal/cmd"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/db"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx, openStore); err != nil && !errors.Is(err, context.Canceled) {
		stop()
		os.Exit(1)
	}
}

// openStore selects the storage backend.
// Options: "json" (snapshot file, default), "sql" (SQLite or PostgreSQL),
// "memory" (no persistence).
func openStore(ctx context.Context, cfg *config.Config) (library.LibraryStore, error) {
	switch cfg.Storage {
	case config.StorageJSON, "":
		// A missing or corrupt file loads as an empty library; any other
		// read failure is fatal.
		s, err := library.OpenJSONStore(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return s, nil

	case config.StorageSQL:
		dialect, err := library.ParseDialect(cfg.DBDriver)
		if err != nil {
			return nil, err
		}
		database, err := db.Open(ctx, cfg.DBDriver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		s, err := library.NewStore(ctx, database, dialect)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("init SQL store: %w", err)
		}
		return s, nil

	case config.StorageMemory:
		return library.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q (choose json, sql, or memory)", cfg.Storage)
	}
}
