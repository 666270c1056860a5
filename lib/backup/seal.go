// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"bytes"
	"io"

	"filippo.io/age"

	"github.com/vaulter-dev/vaulter/lib/fault"
	"github.com/vaulter-dev/vaulter/lib/secret"
)

// seal encrypts payload to every recipient.
func seal(payload []byte, recipientKeys []string) ([]byte, error) {
	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return nil, fault.Backup("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	var sealedBuffer bytes.Buffer
	writer, err := age.Encrypt(&sealedBuffer, recipients...)
	if err != nil {
		return nil, fault.Backup("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(payload); err != nil {
		return nil, fault.Backup("writing payload to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fault.Backup("finalizing age encryption: %w", err)
	}
	return sealedBuffer.Bytes(), nil
}

// open decrypts a sealed payload with any identity in identityFile.
func open(payload []byte, identityFile *secret.Buffer) ([]byte, error) {
	// age parses from a reader over the buffer; the parsed identities
	// live on the heap only for the duration of this call.
	identities, err := age.ParseIdentities(bytes.NewReader(identityFile.Bytes()))
	if err != nil {
		return nil, fault.Backup("parsing identity: %w", err)
	}

	reader, err := age.Decrypt(bytes.NewReader(payload), identities...)
	if err != nil {
		return nil, fault.Backup("decrypting archive: %w", err)
	}
	opened, err := io.ReadAll(reader)
	if err != nil {
		return nil, fault.Backup("reading decrypted archive: %w", err)
	}
	return opened, nil
}
