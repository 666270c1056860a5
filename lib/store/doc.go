// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package store is the durable key → envelope mapping behind vaulter.
//
// A [Store] owns one SQLite database (via lib/sqlitepool) holding a
// single table:
//
//	CREATE TABLE secrets (key TEXT PRIMARY KEY, val TEXT)
//
// where val is the base64 envelope produced by lib/sealed. Values pass
// through a bound [Cipher] on the way in ([Store.Save]) and out
// ([Store.Get]); keys are stored in plaintext so they can be listed
// without the passphrase.
//
// The cipher binding is optional. A store opened without
// [Store.WithCrypto] can create the schema, list and delete keys, and
// move raw rows in and out for backups, but Save and Get fail fast with
// a fault.KindCrypto "crypto not initialized" error.
//
// Writes are upserts: saving an existing key replaces its value in
// place, and deleting an absent key succeeds. Contention between
// processes is left to SQLite's file locking and busy timeout; a lock
// that is not released in time surfaces as fault.KindStore.
package store
