// Package db provides SQLite-backed persistence for trackinbox.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Blob is the shared persisted document: one JSON value per top-level
// key. Writes are shallow merges, a patch replaces only the keys it
// names.
type Blob map[string]json.RawMessage

// BlobStore is the on-device key-value document the engine persists
// its snapshot into.
type BlobStore interface {
	Read(ctx context.Context) (Blob, error)
	Write(ctx context.Context, patch Blob) error
}

// SQLiteBlobStore stores each top-level document key as its own row,
// which makes the shallow-merge write a set of upserts inside one
// transaction.
type SQLiteBlobStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the blob database at path.
func OpenSQLite(path string) (*SQLiteBlobStore, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to blob database: %w", err)
	}

	store := &SQLiteBlobStore{db: conn}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteBlobStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to ensure blob schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteBlobStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Read assembles the full document from all stored keys.
func (s *SQLiteBlobStore) Read(ctx context.Context) (Blob, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM blobs`)
	if err != nil {
		return nil, fmt.Errorf("failed to read blobs: %w", err)
	}
	defer rows.Close()

	blob := make(Blob)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan blob row: %w", err)
		}
		blob[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blobs: %w", err)
	}
	return blob, nil
}

// Write upserts each patch key in one transaction.
func (s *SQLiteBlobStore) Write(ctx context.Context, patch Blob) error {
	if len(patch) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin blob write: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for key, value := range patch {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO blobs (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, string(value))
		if err != nil {
			return fmt.Errorf("failed to write blob key %q: %w", key, err)
		}
	}
	return tx.Commit()
}

// MemoryBlobStore is an in-memory BlobStore for tests and ephemeral
// runs.
type MemoryBlobStore struct {
	mu   sync.Mutex
	blob Blob
}

// NewMemoryBlobStore creates an empty in-memory store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blob: make(Blob)}
}

// Read returns a copy of the current document.
func (s *MemoryBlobStore) Read(ctx context.Context) (Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Blob, len(s.blob))
	for k, v := range s.blob {
		out[k] = v
	}
	return out, nil
}

// Write shallow-merges the patch into the document.
func (s *MemoryBlobStore) Write(ctx context.Context, patch Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range patch {
		s.blob[k] = v
	}
	return nil
}
