package database

import (
	"database/sql"
	"fmt"
)

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial reels schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS reels (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    created_at TEXT DEFAULT (datetime('now')),
    views INTEGER NOT NULL DEFAULT 0,
    watch_time_minutes REAL NOT NULL DEFAULT 0,
    reel_duration_seconds INTEGER NOT NULL DEFAULT 0,
    likes INTEGER NOT NULL DEFAULT 0,
    comments INTEGER NOT NULL DEFAULT 0,
    shares INTEGER NOT NULL DEFAULT 0,
    saves INTEGER NOT NULL DEFAULT 0,
    caption TEXT,
    category TEXT,
    hook_type TEXT,
    follower_count INTEGER NOT NULL DEFAULT 0,
    retention_ratio REAL,
    retention_label TEXT,
    engagement_rate REAL,
    engagement_label TEXT,
    hook_score REAL,
    hook_label TEXT,
    save_rate REAL,
    save_label TEXT
);`)
			return err
		},
	},
	{
		Version:     2,
		Description: "add ai_report and user index",
		Up: func(tx *sql.Tx) error {
			has, err := hasColumn(tx, "reels", "ai_report")
			if err != nil {
				return err
			}
			if !has {
				if _, err := tx.Exec("ALTER TABLE reels ADD COLUMN ai_report TEXT"); err != nil {
					return err
				}
			}
			_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_reels_user_created ON reels(user_id, created_at)`)
			return err
		},
	},
}

// latestVersion returns the highest migration version.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

// hasColumn reports whether table already carries column.
func hasColumn(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
