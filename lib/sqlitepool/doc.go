// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens the SQLite database behind the secret store.
//
// It wraps zombiezen.com/go/sqlite with the pragmas a small,
// cross-process key-value file needs: WAL journaling so a reader in one
// invocation never blocks a writer in another, FULL synchronous so a
// saved secret survives power loss, and a busy timeout so two
// invocations racing on the same file wait for the lock instead of
// failing immediately.
//
// The pool is built on zombiezen's sqlitex.Pool. Callers [Pool.Take] a
// connection, perform work, and [Pool.Put] it back. Connections are not
// safe for concurrent use.
//
// # Pragmas
//
// Every connection is initialized with:
//
//   - journal_mode=WAL
//   - synchronous=FULL
//   - busy_timeout=<Config.BusyTimeout> (default 5000 ms). A lock held
//     longer than this surfaces as SQLITE_BUSY to the caller; there is
//     no retry above this layer.
//   - foreign_keys=OFF
//   - temp_store=MEMORY
//
// # Usage
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   "/home/me/.local/share/vaulter/vault.db",
//	    Logger: logger,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
// The package is intentionally thin: callers write SQL, use
// sqlitex.Execute for cached statements, and manage transactions with
// sqlitex.ImmediateTransaction.
package sqlitepool
