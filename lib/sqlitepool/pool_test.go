// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitepool_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/vaulter-dev/vaulter/lib/sqlitepool"
)

func TestPragmasApplied(t *testing.T) {
	pool := openTestPool(t, sqlitepool.Config{BusyTimeout: 1500 * time.Millisecond})

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	defer pool.Put(conn)

	if got := pragmaText(t, conn, "PRAGMA journal_mode"); got != "wal" {
		t.Errorf("journal_mode = %q, want %q", got, "wal")
	}
	// FULL is 2.
	if got := pragmaText(t, conn, "PRAGMA synchronous"); got != "2" {
		t.Errorf("synchronous = %s, want 2 (FULL)", got)
	}
	if got := pragmaText(t, conn, "PRAGMA busy_timeout"); got != "1500" {
		t.Errorf("busy_timeout = %s, want 1500", got)
	}
}

func TestDefaultBusyTimeout(t *testing.T) {
	pool := openTestPool(t, sqlitepool.Config{})

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	defer pool.Put(conn)

	if got := pragmaText(t, conn, "PRAGMA busy_timeout"); got != "5000" {
		t.Errorf("busy_timeout = %s, want 5000", got)
	}
}

func TestOnConnectCreatesSchema(t *testing.T) {
	var called bool
	pool := openTestPool(t, sqlitepool.Config{
		OnConnect: func(conn *sqlite.Conn) error {
			called = true
			return sqlitex.ExecuteScript(conn, `
				CREATE TABLE IF NOT EXISTS entries (
					name TEXT PRIMARY KEY,
					body TEXT
				);
			`, nil)
		},
	})

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	defer pool.Put(conn)

	if !called {
		t.Error("OnConnect was not called")
	}
	err = sqlitex.Execute(conn, "INSERT INTO entries (name, body) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []any{"first", "body"},
	})
	if err != nil {
		t.Fatalf("INSERT: %v", err)
	}
}

func TestOnConnectErrorSurfacesFromTake(t *testing.T) {
	sentinel := errors.New("schema broken")
	pool := openTestPool(t, sqlitepool.Config{
		OnConnect: func(*sqlite.Conn) error { return sentinel },
	})

	conn, err := pool.Take(context.Background())
	if err == nil {
		pool.Put(conn)
		t.Fatal("Take succeeded, want OnConnect error")
	}
	if !strings.Contains(err.Error(), sentinel.Error()) {
		t.Errorf("Take error = %v, want it to mention %q", err, sentinel)
	}
}

func TestPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")
	pool, err := sqlitepool.Open(sqlitepool.Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer pool.Close()

	if pool.Path() != path {
		t.Errorf("Path() = %q, want %q", pool.Path(), path)
	}
}

func TestEmptyPathRejected(t *testing.T) {
	if _, err := sqlitepool.Open(sqlitepool.Config{}); err == nil {
		t.Fatal("Open with empty Path succeeded, want error")
	}
}

func TestContextCancellation(t *testing.T) {
	pool := openTestPool(t, sqlitepool.Config{PoolSize: 1})

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	defer pool.Put(conn)

	// The only connection is held, so a cancelled context must fail.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pool.Take(ctx); err == nil {
		t.Fatal("Take with cancelled context succeeded, want error")
	}
}

// openTestPool opens cfg against a temporary database file, filling in
// Path, and closes the pool when the test completes.
func openTestPool(t *testing.T, cfg sqlitepool.Config) *sqlitepool.Pool {
	t.Helper()

	cfg.Path = filepath.Join(t.TempDir(), "test.db")
	pool, err := sqlitepool.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return pool
}

// pragmaText runs a single-value PRAGMA query and returns its text.
func pragmaText(t *testing.T, conn *sqlite.Conn, query string) string {
	t.Helper()

	var value string
	err := sqlitex.ExecuteTransient(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("%s: %v", query, err)
	}
	return value
}
