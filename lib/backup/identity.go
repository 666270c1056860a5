// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"fmt"
	"os"
	"time"

	"filippo.io/age"

	"github.com/vaulter-dev/vaulter/lib/clock"
	"github.com/vaulter-dev/vaulter/lib/fault"
	"github.com/vaulter-dev/vaulter/lib/secret"
)

// Identity is an age X25519 keypair for sealing archives.
type Identity struct {
	// PrivateKey is the secret key in AGE-SECRET-KEY-1... format, stored
	// in mmap memory outside the Go heap.
	PrivateKey *secret.Buffer

	// PublicKey is the corresponding recipient in age1... format.
	PublicKey string

	// CreatedAt is recorded in the identity file's header comment.
	CreatedAt time.Time
}

// GenerateIdentity creates a fresh keypair.
func GenerateIdentity(c clock.Clock) (*Identity, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fault.Backup("generating age keypair: %w", err)
	}

	// The string returned by identity.String is on the heap and cannot
	// be zeroed; the buffer is the durable copy.
	privateKey, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fault.Backup("protecting private key: %w", err)
	}

	return &Identity{
		PrivateKey: privateKey,
		PublicKey:  identity.Recipient().String(),
		CreatedAt:  c.Now().UTC(),
	}, nil
}

// Close releases the private key buffer.
func (i *Identity) Close() error {
	if i.PrivateKey != nil {
		return i.PrivateKey.Close()
	}
	return nil
}

// WriteFile writes the identity in age's identity file format, readable
// only by the owner. An existing file is never overwritten.
func (i *Identity) WriteFile(path string) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fault.Backup("creating identity file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fault.Backup("closing identity file: %w", closeErr)
		}
	}()

	header := fmt.Sprintf("# created: %s\n# public key: %s\n", i.CreatedAt.Format(time.RFC3339), i.PublicKey)
	if _, err := file.WriteString(header); err != nil {
		return fault.Backup("writing identity file: %w", err)
	}
	if _, err := file.Write(i.PrivateKey.Bytes()); err != nil {
		return fault.Backup("writing identity file: %w", err)
	}
	if _, err := file.WriteString("\n"); err != nil {
		return fault.Backup("writing identity file: %w", err)
	}
	return nil
}
