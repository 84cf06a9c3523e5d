// Package sqlite implements a loantracker.Store in a SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);`

// entry is a row of the kv table.
type entry struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store keeps every value in a row of the kv table.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path, creating it and its schema if needed.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", path, err)
	}
	// an in-memory database exists per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize schema in %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Load(key string) (string, bool, error) {
	var e entry
	err := s.db.Get(&e, "SELECT key, value, updated_at FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("could not load %q: %w", key, err)
	}
	return e.Value, true, nil
}

func (s *Store) Save(key, text string) error {
	_, err := s.db.NamedExec(`
		INSERT INTO kv (key, value, updated_at) VALUES (:key, :value, :updated_at)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, entry{Key: key, Value: text, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("could not save %q: %w", key, err)
	}
	return nil
}

// Keys returns the keys that have a value, in lexical order.
func (s *Store) Keys() ([]string, error) {
	keys := []string{}
	if err := s.db.Select(&keys, "SELECT key FROM kv ORDER BY key"); err != nil {
		return nil, fmt.Errorf("could not list keys: %w", err)
	}
	return keys, nil
}
