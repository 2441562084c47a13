// Package sqlite persists symbol sets in a SQLite database using the
// ncruces/go-sqlite3 WebAssembly build, so no cgo toolchain is needed.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB wraps the connection pool shared by the services.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Use ":memory:" for a private in-memory
// database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// inMemory reports whether the database lives only in memory, where
// journal_mode=WAL does not apply.
func (db *DB) inMemory() bool {
	return db.path == ":memory:" || strings.Contains(db.path, "mode=memory")
}

// Open connects, applies connection pragmas and migrates the schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open database %s: %w", db.path, err)
	}

	// One connection: SQLite serializes writers anyway, and a private
	// in-memory database exists only on the connection that created it.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect to database %s: %w", db.path, err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if !db.inMemory() {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return fmt.Errorf("%s: %w", p, err)
		}
	}

	for i, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("create schema (statement %d): %w", i, err)
		}
	}

	db.db = conn
	return nil
}

// Close closes the connection. It is safe to call on a DB that was never
// opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// schema is applied in order on every Open. Entries keep their table
// position so a set can be rebuilt in generator order; symbol_key is
// indexed per set for prefix range scans.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		source_url TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		set_id TEXT NOT NULL REFERENCES sets(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		symbol_key TEXT NOT NULL,
		label TEXT NOT NULL,
		PRIMARY KEY (set_id, position),
		UNIQUE (set_id, symbol_key)
	)`,
	`CREATE TABLE IF NOT EXISTS refs (
		set_id TEXT NOT NULL,
		entry_position INTEGER NOT NULL,
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		relative INTEGER NOT NULL DEFAULT 0,
		owner TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (set_id, entry_position, position),
		FOREIGN KEY (set_id, entry_position) REFERENCES entries(set_id, position) ON DELETE CASCADE
	)`,
}
