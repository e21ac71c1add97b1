// Package kv provides a synchronous key-value store backed by SQLite.
package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store persists opaque string values by key. Writes are synchronous and
// last-write-wins; there are no transactional guarantees across keys.
type Store struct {
	db *sql.DB
}

// NewStore creates a key-value store over an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load retrieves the value stored under key. The second return value is
// false when the key has never been saved.
func (s *Store) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %q: %w", key, err)
	}
	return value, true, nil
}

// Get retrieves the value stored under key, returning ErrNotFound when absent.
func (s *Store) Get(key string) (string, error) {
	value, ok, err := s.Load(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	return value, nil
}

// Save stores value under key, replacing any existing value.
func (s *Store) Save(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
