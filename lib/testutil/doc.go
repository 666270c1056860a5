// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for vaulter packages.
//
// [DatabasePath] returns a fresh database path inside t.TempDir(), for
// tests that open a real SQLite store.
//
// [UniqueID] generates monotonically increasing identifiers. Use it
// when a test needs distinct secret keys or file names without relying
// on time.Now().
//
// Helpers call t.Fatalf on failure rather than returning errors, since
// test setup failures are not recoverable.
//
// This package has no vaulter-internal dependencies.
package testutil
