// Package storage provides the persistence layer for the filing desk.
//
// State lives in per-user key/value partitions, each holding one
// JSON-encoded value. The layer mirrors the layout of the original portal's
// browser storage (filing_history_<email>, profile_data_<email>, ...) on
// top of a single SQLite table. All read-modify-write cycles are serialized
// behind one mutex: unlike a browser event loop, callers here may run on
// multiple goroutines.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the partition store using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// getPartition reads the raw value of a partition. Absent partitions
// return (nil, nil).
func (s *SQLiteStorage) getPartition(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM partitions WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read partition %s: %w", key, err)
	}
	return value, nil
}

// putPartition overwrites a partition in its entirety.
func (s *SQLiteStorage) putPartition(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO partitions (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write partition %s: %w", key, err)
	}
	return nil
}

// deletePartition removes a partition entirely. Deleting an absent
// partition is not an error.
func (s *SQLiteStorage) deletePartition(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM partitions WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete partition %s: %w", key, err)
	}
	return nil
}

// dropCorrupt deletes a partition whose value failed to decode. Corrupt
// state is treated as absent, never surfaced to the caller.
func (s *SQLiteStorage) dropCorrupt(ctx context.Context, key string, decodeErr error) {
	slog.Warn("Dropping corrupt partition",
		"key", key,
		"error", decodeErr)
	if err := s.deletePartition(ctx, key); err != nil {
		slog.Error("Failed to drop corrupt partition", "key", key, "error", err)
	}
}
