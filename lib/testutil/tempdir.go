// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DatabasePath returns the path of a not-yet-existing database file in a
// per-test temporary directory. The directory is removed when the test
// completes.
func DatabasePath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), UniqueID("vault")+".db")
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("database path %s already exists", path)
	}
	return path
}
