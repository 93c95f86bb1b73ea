package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS boat_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS boats (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			length REAL NOT NULL DEFAULT 0,
			price REAL NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			type_id TEXT NOT NULL DEFAULT '',
			picture TEXT NOT NULL DEFAULT '',
			contact TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_boats_type ON boats(type_id)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			boat_id TEXT NOT NULL REFERENCES boats(id) ON DELETE CASCADE,
			name TEXT NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			rating INTEGER NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_boat ON reviews(boat_id)`,
	},
}

// NewSQLiteStore opens or creates a SQLite database file
func NewSQLiteStore(ctx context.Context, path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	return newSQLStore(ctx, db, sqliteDialect)
}
