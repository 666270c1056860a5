// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/vaulter-dev/vaulter/lib/fault"
	"github.com/vaulter-dev/vaulter/lib/record"
	"github.com/vaulter-dev/vaulter/lib/sqlitepool"
)

const schema = `
CREATE TABLE IF NOT EXISTS secrets (
	key TEXT PRIMARY KEY,
	val TEXT
);
`

// ErrNotFound is wrapped by the error Get returns for an absent key.
var ErrNotFound = errors.New("no secret found for key")

// Cipher converts plaintext values to stored envelopes and back.
// *sealed.Context implements it.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encoded string) (string, error)
}

// Row is one persisted (key, envelope) pair, as stored.
type Row struct {
	Key string
	Val string
}

// Config holds the parameters for opening a store.
type Config struct {
	// Path is the database file. The parent directory must exist.
	Path string

	// BusyTimeout bounds the wait for a lock held by another vaulter
	// process. Zero uses sqlitepool.DefaultBusyTimeout.
	BusyTimeout time.Duration

	// Logger receives operational messages. If nil, a no-op logger is
	// used.
	Logger *slog.Logger
}

// Store is the persistent secret store.
type Store struct {
	pool   *sqlitepool.Pool
	logger *slog.Logger

	// cipher is nil until WithCrypto binds one.
	cipher Cipher
}

// Open opens or creates the database at cfg.Path and ensures the
// secrets table exists. One connection is established immediately so
// that open and schema failures are reported here rather than on the
// first operation.
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:        cfg.Path,
		PoolSize:    1,
		BusyTimeout: cfg.BusyTimeout,
		Logger:      logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fault.Store("failed to open database: %w", err)
	}

	conn, err := pool.Take(context.Background())
	if err != nil {
		pool.Close()
		return nil, fault.Store("failed to create table: %w", err)
	}
	pool.Put(conn)

	logger.Debug("secret store ready", "path", cfg.Path)

	return &Store{pool: pool, logger: logger}, nil
}

// WithCrypto binds cipher for subsequent Save and Get calls and returns
// the store.
func (s *Store) WithCrypto(cipher Cipher) *Store {
	s.cipher = cipher
	return s
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.pool.Path()
}

// Close closes the database. It does not close the bound cipher, which
// belongs to the caller.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return fault.Store("failed to close database: %w", err)
	}
	return nil
}

// Save encrypts the record's value and upserts it under the record's
// key.
func (s *Store) Save(ctx context.Context, secret record.Record) error {
	if s.cipher == nil {
		return fault.Crypto("crypto not initialized")
	}

	encrypted, err := s.cipher.Encrypt(secret.Value())
	if err != nil {
		return err
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fault.Store("failed to save: %w", err)
	}
	defer s.pool.Put(conn)

	if err := upsert(conn, secret.Key(), encrypted); err != nil {
		return fault.Store("failed to save: %w", err)
	}
	return nil
}

// Get looks up key, decrypts its value, and revalidates the pair. An
// absent key is a fault.KindStore error wrapping ErrNotFound; a value
// that fails authentication is fault.KindCrypto; a decrypted pair that
// fails record validation is fault.KindStore.
func (s *Store) Get(ctx context.Context, key string) (record.Record, error) {
	if s.cipher == nil {
		return record.Record{}, fault.Crypto("crypto not initialized")
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return record.Record{}, fault.Store("failed to query: %w", err)
	}
	defer s.pool.Put(conn)

	var (
		found     bool
		storedKey string
		encrypted string
	)
	err = sqlitex.Execute(conn, "SELECT key, val FROM secrets WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			if stmt.ColumnType(1) != sqlite.TypeText {
				return errors.New("value column is not text")
			}
			found = true
			storedKey = stmt.ColumnText(0)
			encrypted = stmt.ColumnText(1)
			return nil
		},
	})
	if err != nil {
		return record.Record{}, fault.Store("failed to get row: %w", err)
	}
	if !found {
		return record.Record{}, fault.Store("%w: %s", ErrNotFound, key)
	}

	plaintext, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		return record.Record{}, err
	}

	secret, err := record.New(storedKey, plaintext)
	if err != nil {
		return record.Record{}, fault.Store("stored secret for key %s is invalid: %w", key, err)
	}
	return secret, nil
}

// Exists reports whether a row for key is present. It needs no cipher.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return false, fault.Store("failed to query: %w", err)
	}
	defer s.pool.Put(conn)

	var found bool
	err = sqlitex.Execute(conn, "SELECT 1 FROM secrets WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(*sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	if err != nil {
		return false, fault.Store("failed to query: %w", err)
	}
	return found, nil
}

// ListKeys returns every key in the order SQLite yields them. Callers
// must not rely on that order. An empty store yields an empty, non-nil
// slice.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fault.Store("failed to list keys: %w", err)
	}
	defer s.pool.Put(conn)

	keys := []string{}
	err = sqlitex.Execute(conn, "SELECT key FROM secrets", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			keys = append(keys, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, fault.Store("failed to list keys: %w", err)
	}
	return keys, nil
}

// Delete removes the row for key. Deleting an absent key is not an
// error.
func (s *Store) Delete(ctx context.Context, key string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fault.Store("failed to delete: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, "DELETE FROM secrets WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
	})
	if err != nil {
		return fault.Store("failed to delete: %w", err)
	}
	return nil
}

// Rows returns every row exactly as stored, envelopes still sealed.
// It needs no cipher.
func (s *Store) Rows(ctx context.Context) ([]Row, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fault.Store("failed to read rows: %w", err)
	}
	defer s.pool.Put(conn)

	rows := []Row{}
	err = sqlitex.Execute(conn, "SELECT key, val FROM secrets ORDER BY key", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rows = append(rows, Row{Key: stmt.ColumnText(0), Val: stmt.ColumnText(1)})
			return nil
		},
	})
	if err != nil {
		return nil, fault.Store("failed to read rows: %w", err)
	}
	return rows, nil
}

// PutRows upserts rows as given, in a single IMMEDIATE transaction: all
// rows are written or none are. Envelopes are stored without being
// opened, so the caller is responsible for their structure.
func (s *Store) PutRows(ctx context.Context, rows []Row) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fault.Store("failed to write rows: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fault.Store("failed to begin transaction: %w", err)
	}
	defer endTransaction(&err)

	for _, row := range rows {
		if err = upsert(conn, row.Key, row.Val); err != nil {
			return fault.Store("failed to write row %s: %w", row.Key, err)
		}
	}
	return nil
}

func upsert(conn *sqlite.Conn, key, val string) error {
	return sqlitex.Execute(conn,
		"INSERT INTO secrets (key, val) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET val = excluded.val",
		&sqlitex.ExecOptions{Args: []any{key, val}},
	)
}
