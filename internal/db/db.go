// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package db opens the database handle used by the relational library store.
package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
)

const pingTimeout = 2 * time.Second

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("unicode_lower", 1, unicodeLower)
}

// unicodeLower is SQLite's lower() with full Unicode case mapping. NULL
// stays NULL.
func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}

// DefaultDBPath returns the SQLite database location under the user's data
// directory.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "library.db")
}

// DataDir returns $XDG_DATA_HOME/arc-bookshelf, falling back to
// ~/.local/share/arc-bookshelf.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "arc-bookshelf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "arc-bookshelf")
}

// Open returns a pinged handle for driver ("sqlite" or "postgres").
//
// For SQLite, dsn is a file path; its directory is created and the pool is
// limited to a single connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var database *sql.DB
	var err error

	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		if dsn == "" {
			dsn = DefaultDBPath()
		}
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		database, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		database.SetMaxOpenConns(1)
	case "postgres", "postgresql", "pgx":
		if dsn == "" {
			return nil, fmt.Errorf("postgres requires a dsn")
		}
		database, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		database.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q (choose sqlite or postgres)", driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := database.PingContext(pingCtx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}
	return database, nil
}

// RedactDSN hides the credentials in a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
