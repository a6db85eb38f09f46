package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/manav03panchal/dayaim/internal/errors"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteDB is a Substrate backed by a single SQLite table.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

var (
	_ Substrate = (*SQLiteDB)(nil)
	_ KeyLister = (*SQLiteDB)(nil)
)

// DefaultSQLitePath returns the default SQLite file path.
func DefaultSQLitePath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "dayaim.sqlite")
}

// OpenSQLite opens or creates a SQLite substrate. An empty path or ":memory:"
// opens a private in-memory database.
func OpenSQLite(path string) (*SQLiteDB, error) {
	dsn := path
	inMemory := path == "" || path == ":memory:"
	if inMemory {
		dsn = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: an in-memory database lives and dies with it, and the
	// pragmas below are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range append(pragmas, sqliteSchema) {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	s := &SQLiteDB{db: db}
	if !inMemory {
		s.path = path
	}
	return s, nil
}

// Get retrieves raw bytes by key.
func (s *SQLiteDB) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set stores raw bytes with the given key.
func (s *SQLiteDB) Set(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, data,
	)
	return err
}

// RemoveMany deletes the given keys in one transaction.
func (s *SQLiteDB) RemoveMany(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	for _, key := range keys {
		if _, err := tx.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Clear deletes every key.
func (s *SQLiteDB) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	return err
}

// Keys returns every key in sorted order.
func (s *SQLiteDB) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Path returns the database file path, or "" for an in-memory database.
func (s *SQLiteDB) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
