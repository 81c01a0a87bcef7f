// Package database is the local SQLite cache behind the tool: pitch rows
// keyed by game date, resolved player names, and run history.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is a handle on the single cache file. The workload is read-heavy;
// writes arrive in day-sized batches when a date is cached.
type DB struct {
	conn *sql.DB
	path string
}

// openPragmas are applied to every new connection before use. WAL plus a
// busy timeout covers the rare case of two invocations sharing the cache.
var openPragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

// Open opens the cache at dbPath, creating the file and any missing parent
// directories, and brings the schema up to date.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	for _, pragma := range openPragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("preparing cache schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error { return db.conn.Close() }

// Path returns the cache file location.
func (db *DB) Path() string { return db.path }
