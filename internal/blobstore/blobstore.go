package blobstore

import (
	"database/sql"
	"fmt"

	"docu360/internal/config"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed keyed blob storage. It holds the durable
// document-tree snapshots, one opaque blob per key.
type Store struct {
	db *sqlx.DB
}

// New opens the SQLite database at the configured file path and ensures the
// blobs table exists.
func New(cfg config.BlobStoreConfig) (*Store, error) {
	db, err := sqlx.Connect("sqlite", cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite blob store: %w", err)
	}

	// WAL mode is generally better for concurrent readers.
	_, err = db.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return nil, fmt.Errorf("failed to set WAL mode on sqlite blob store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value BLOB
	);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get retrieves a blob by key. It returns nil if the key is absent; a missing
// blob is not an error.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM blobs WHERE key = ?`
	if err := s.db.Get(&value, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	return value, nil
}

// Put stores a blob under the given key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	query := `INSERT OR REPLACE INTO blobs (key, value) VALUES (?, ?)`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to put blob: %w", err)
	}
	return nil
}

// Delete removes a blob by key.
func (s *Store) Delete(key string) error {
	query := `DELETE FROM blobs WHERE key = ?`
	if _, err := s.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
