// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vaulter-dev/vaulter/lib/fault"
	"github.com/vaulter-dev/vaulter/lib/store"
)

// populated returns a harness holding two secrets.
func populated(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	h.mustRun(t, "set", "api-token", "sk-abcd1234")
	h.mustRun(t, "set", "db-password", "hunter22")
	return h
}

func TestExportImportRoundTrip(t *testing.T) {
	source := populated(t)
	path := filepath.Join(t.TempDir(), "vault.bak")

	want := "Exported 2 secrets to " + path + "\n"
	if got := source.mustRun(t, "export", path); got != want {
		t.Errorf("export output = %q, want %q", got, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("backup file mode = %o, want 600", perm)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if bytes.Contains(contents, []byte("sk-abcd1234")) || bytes.Contains(contents, []byte("hunter22")) {
		t.Error("backup contains plaintext values")
	}

	target := newHarness(t)
	if got := target.mustRun(t, "import", path); got != "Imported 2 secrets\n" {
		t.Errorf("import output = %q", got)
	}
	if got := target.mustRun(t, "get", "--stdout", "db-password"); got != "hunter22\n" {
		t.Errorf("get after import = %q", got)
	}
}

func TestImportKeepsUnrelatedKeys(t *testing.T) {
	source := populated(t)
	path := filepath.Join(t.TempDir(), "vault.bak")
	source.mustRun(t, "export", path)

	target := newHarness(t)
	target.mustRun(t, "set", "api-token", "stale-value")
	target.mustRun(t, "set", "local-only", "keep-me")
	target.mustRun(t, "import", path)

	if got := target.mustRun(t, "get", "--stdout", "api-token"); got != "sk-abcd1234\n" {
		t.Errorf("imported key not replaced: %q", got)
	}
	if got := target.mustRun(t, "get", "--stdout", "local-only"); got != "keep-me\n" {
		t.Errorf("unrelated key changed: %q", got)
	}
}

func TestExportRefusesOverwrite(t *testing.T) {
	h := populated(t)
	path := filepath.Join(t.TempDir(), "vault.bak")
	if err := os.WriteFile(path, []byte("precious"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := h.run(t, "export", path)
	if !fault.Is(err, fault.KindBackup) {
		t.Fatalf("err = %v, want KindBackup", err)
	}
	if !errors.Is(err, os.ErrExist) {
		t.Errorf("err = %v, want os.ErrExist in chain", err)
	}
	if contents, _ := os.ReadFile(path); string(contents) != "precious" {
		t.Errorf("existing file modified: %q", contents)
	}

	h.mustRun(t, "export", "--force", path)
	if contents, _ := os.ReadFile(path); string(contents) == "precious" {
		t.Error("--force did not overwrite the file")
	}
}

func TestExportImportThroughStdio(t *testing.T) {
	source := populated(t)

	archive, err := source.run(t, "export", "-")
	if err != nil {
		t.Fatalf("export -: %v", err)
	}
	if got := source.stderr.String(); got != "Exported 2 secrets\n" {
		t.Errorf("export - stderr = %q", got)
	}

	target := newHarness(t)
	target.env.Stdin = strings.NewReader(archive)
	if err := Root(target.env).Execute(context.Background(), []string{"import", "-"}, nil); err != nil {
		t.Fatalf("import -: %v", err)
	}
	if got := target.mustRun(t, "get", "--stdout", "api-token"); got != "sk-abcd1234\n" {
		t.Errorf("get after import = %q", got)
	}
}

func TestImportStdinConflict(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t, "import", "-", "--identity-file", "-"); err == nil {
		t.Fatal("want error when both backup and identity come from stdin")
	}
}

func TestImportVerify(t *testing.T) {
	source := populated(t)
	path := filepath.Join(t.TempDir(), "vault.bak")
	source.mustRun(t, "export", path)

	target := newHarness(t)
	target.passphrase = "a different passphrase"

	_, err := target.run(t, "import", "--verify", path)
	if !fault.Is(err, fault.KindCrypto) {
		t.Fatalf("err = %v, want KindCrypto", err)
	}
	if got := target.mustRun(t, "all"); got != "" {
		t.Errorf("rows imported despite failed verification: %q", got)
	}

	target.passphrase = testPassphrase
	if got := target.mustRun(t, "import", "--verify", path); got != "Imported 2 secrets\n" {
		t.Errorf("import --verify output = %q", got)
	}
}

func TestImportWithoutVerifyKeepsForeignEnvelopes(t *testing.T) {
	source := populated(t)
	path := filepath.Join(t.TempDir(), "vault.bak")
	source.mustRun(t, "export", path)

	target := newHarness(t)
	target.passphrase = "a different passphrase"
	target.mustRun(t, "import", path)

	if _, err := target.run(t, "get", "--stdout", "api-token"); !fault.Is(err, fault.KindCrypto) {
		t.Errorf("get under a different passphrase: err = %v, want KindCrypto", err)
	}
}

func TestImportCorruptBackup(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "vault.bak")
	if err := os.WriteFile(path, []byte("this is not a backup at all, just some text"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := h.run(t, "import", path); !fault.Is(err, fault.KindBackup) {
		t.Errorf("err = %v, want KindBackup", err)
	}
	if _, err := h.run(t, "import", filepath.Join(t.TempDir(), "missing.bak")); !fault.Is(err, fault.KindBackup) {
		t.Errorf("missing file: err = %v, want KindBackup", err)
	}
}

func TestSealedExportImport(t *testing.T) {
	source := populated(t)
	directory := t.TempDir()
	identityPath := filepath.Join(directory, "identity.txt")
	backupPath := filepath.Join(directory, "vault.bak")

	output := source.mustRun(t, "keygen", identityPath)
	publicKey, found := strings.CutPrefix(strings.TrimSpace(output), "Public key: ")
	if !found || !strings.HasPrefix(publicKey, "age1") {
		t.Fatalf("keygen output = %q", output)
	}
	if _, err := source.run(t, "keygen", identityPath); err == nil {
		t.Error("keygen overwrote an existing identity file")
	}

	source.mustRun(t, "export", backupPath, "--recipient", publicKey)
	contents, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(contents, []byte("api-token")) {
		t.Error("sealed backup exposes key names")
	}

	target := newHarness(t)
	if _, err := target.run(t, "import", backupPath); !fault.Is(err, fault.KindBackup) {
		t.Errorf("import without identity: err = %v, want KindBackup", err)
	}
	if got := target.mustRun(t, "import", backupPath, "--identity-file", identityPath); got != "Imported 2 secrets\n" {
		t.Errorf("sealed import output = %q", got)
	}

	secrets, err := store.Open(store.Config{Path: target.env.Config.Database.Path})
	if err != nil {
		t.Fatal(err)
	}
	defer secrets.Close()
	keys, err := secrets.ListKeys(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Errorf("imported keys = %v, want 2", keys)
	}
}

func TestExportInvalidRecipient(t *testing.T) {
	h := populated(t)
	path := filepath.Join(t.TempDir(), "vault.bak")

	if _, err := h.run(t, "export", path, "--recipient", "age1notakey"); !fault.Is(err, fault.KindBackup) {
		t.Errorf("err = %v, want KindBackup", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("partial backup left behind: stat err = %v", err)
	}
}
