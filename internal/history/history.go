// Package history provides a SQLite-backed append-only log of processed
// commands. It records what the user asked, how it was classified, and what
// the dispatcher answered; it holds no conversation state.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS commands (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	command    TEXT NOT NULL,
	intent     TEXT NOT NULL DEFAULT '',
	action     TEXT NOT NULL DEFAULT '',
	result     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_commands_created_at ON commands(created_at);
`

// Entry is one processed command.
type Entry struct {
	ID        int64     `json:"id"`
	Command   string    `json:"command"`
	Intent    string    `json:"intent"`
	Action    string    `json:"action,omitempty"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// CommandLog defines the command log operations. Consumers should depend on
// this interface rather than the concrete *DB type to facilitate testing.
type CommandLog interface {
	Append(e Entry) error
	Recent(limit int) ([]Entry, error)
	Close() error
}

// Verify *DB satisfies CommandLog at compile time.
var _ CommandLog = (*DB)(nil)

// DB wraps a sql.DB with command log operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Append records one processed command.
func (db *DB) Append(e Entry) error {
	_, err := db.conn.Exec(
		`INSERT INTO commands (command, intent, action, result) VALUES (?, ?, ?, ?)`,
		e.Command, e.Intent, e.Action, e.Result)
	if err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (db *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT id, command, intent, action, result, created_at
		 FROM commands ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Command, &e.Intent, &e.Action, &e.Result, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
