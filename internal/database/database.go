package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// busyTimeoutMillis is how long a write waits for the CLI and a running
// server to release the reel store before failing with SQLITE_BUSY.
const busyTimeoutMillis = 5000

// pragmas run on every pooled connection. The reel store has no foreign keys.
var pragmas = []struct{ stmt, what string }{
	{"PRAGMA journal_mode=WAL", "setting journal mode"},
	{fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMillis), "setting busy timeout"},
	{"PRAGMA synchronous=NORMAL", "setting synchronous mode"},
}

// DB is the append-only reel store.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the reel store at dbPath and brings its schema up
// to date.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Per-connection pragmas only hold on the connection they ran on, so the
	// pool is pinned to one connection. InsertReels batches share it too.
	conn.SetMaxOpenConns(1)
	for _, p := range pragmas {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
