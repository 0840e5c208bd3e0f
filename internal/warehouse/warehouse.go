//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package warehouse implements the dimensional warehouse: schema management
// and the full-refresh reload of dimension and fact tables.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/smartstore/smartstore-etl/internal/logging"
)

// Pragmas applied to every connection. Foreign keys are enforced, so a fact
// row referencing a missing dimension key is rejected at insert time.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// DB is the subset of database/sql methods the schema manager and loaders
// need. Both *sql.DB and *sql.Tx satisfy it.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Warehouse wraps the SQLite warehouse file. The reload expects to be the
// only writer; concurrent reloads against the same file are unsupported.
type Warehouse struct {
	db        *sql.DB
	path      string
	batchSize int
}

// Option customises Open behaviour.
type Option func(*Warehouse)

// WithBatchSize sets the number of rows per batched insert statement.
func WithBatchSize(n int) Option {
	return func(w *Warehouse) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

// Open opens the warehouse file at path, creating its containing directory
// if absent. The caller must Close the returned warehouse.
func Open(path string, opts ...Option) (*Warehouse, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create warehouse directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}

	// The reload runs on a single connection; a pool would spread the
	// transaction state across connections.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}

	w := &Warehouse{db: db, path: path, batchSize: 500}
	for _, o := range opts {
		o(w)
	}

	logging.Debug().Str("path", path).Msg("Warehouse opened")
	return w, nil
}

// Close releases the underlying database handle.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

// DB exposes the underlying handle for ad-hoc queries against the loaded
// warehouse.
func (w *Warehouse) DB() *sql.DB {
	return w.db
}

// Ensure creates the warehouse tables if absent, outside any reload.
func (w *Warehouse) Ensure(ctx context.Context) error {
	return EnsureSchema(ctx, w.db)
}

// Path returns the warehouse file path.
func (w *Warehouse) Path() string {
	return w.path
}

// RowCount returns the number of rows in a table. Used for logging and
// verification after a reload.
func (w *Warehouse) RowCount(ctx context.Context, table string) (int64, error) {
	var n int64
	err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
