// Package database persists probe results in SQLite and answers aggregate
// queries over them.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with the sink operations.
type DB struct {
	*sql.DB
}

// New opens (or creates) the results database.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// WAL mode keeps the single writer from blocking readers.
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{db}, nil
}

// InitSchema creates the results table and its indexes.
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS ping_results (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        address TEXT NOT NULL,
        packets_sent INTEGER NOT NULL DEFAULT 1,
        packets_received INTEGER NOT NULL DEFAULT 0,
        packet_loss_percent REAL NOT NULL DEFAULT 100.0,
        latency_ms REAL,
        is_active BOOLEAN NOT NULL DEFAULT 0,
        scan_timestamp DATETIME NOT NULL,
        ttl INTEGER,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_address ON ping_results(address);
    CREATE INDEX IF NOT EXISTS idx_scan_timestamp ON ping_results(scan_timestamp);
    CREATE INDEX IF NOT EXISTS idx_is_active ON ping_results(is_active);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
