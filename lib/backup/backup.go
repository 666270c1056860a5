// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/zeebo/blake3"

	"github.com/vaulter-dev/vaulter/lib/clock"
	"github.com/vaulter-dev/vaulter/lib/codec"
	"github.com/vaulter-dev/vaulter/lib/fault"
	"github.com/vaulter-dev/vaulter/lib/record"
	"github.com/vaulter-dev/vaulter/lib/sealed"
	"github.com/vaulter-dev/vaulter/lib/secret"
	"github.com/vaulter-dev/vaulter/lib/store"
)

// FormatVersion is the archive body version written by Write.
const FormatVersion = 1

const (
	magic = "VLTBAK\x00\x01"

	// flagSealed marks a payload encrypted to age recipients.
	flagSealed byte = 1 << 0

	digestSize = 32
	headerSize = len(magic) + 1 + digestSize

	// maxArchiveSize bounds what Read will buffer. A full store of
	// maximum-length rows is far smaller.
	maxArchiveSize = 256 << 20
)

// Archive is a point-in-time copy of every row in a store.
type Archive struct {
	Version   int
	CreatedAt time.Time
	Rows      []store.Row
}

// NewArchive stamps rows with the current time from c.
func NewArchive(rows []store.Row, c clock.Clock) *Archive {
	return &Archive{
		Version:   FormatVersion,
		CreatedAt: c.Now().UTC(),
		Rows:      rows,
	}
}

// archiveBody is the CBOR form of an Archive.
type archiveBody struct {
	Version   int         `cbor:"version"`
	CreatedAt time.Time   `cbor:"created_at"`
	Rows      []entryBody `cbor:"rows"`
}

type entryBody struct {
	Key string `cbor:"key"`
	Val string `cbor:"val"`
}

// WriteOptions controls Write.
type WriteOptions struct {
	// Recipients are age public keys (age1...). When non-empty the
	// payload is encrypted so that any one of them can open it.
	Recipients []string

	// Clock stamps the archive. Nil uses the wall clock.
	Clock clock.Clock
}

// ReadOptions controls Read.
type ReadOptions struct {
	// Identity holds age identities (an identity file's contents) that
	// open a sealed archive. Ignored for unsealed archives.
	Identity *secret.Buffer
}

// Write encodes rows as an archive and writes it to w.
func Write(w io.Writer, rows []store.Row, options WriteOptions) error {
	c := options.Clock
	if c == nil {
		c = clock.Real()
	}
	archive := NewArchive(rows, c)

	body := archiveBody{
		Version:   archive.Version,
		CreatedAt: archive.CreatedAt,
		Rows:      make([]entryBody, len(rows)),
	}
	for i, row := range rows {
		body.Rows[i] = entryBody{Key: row.Key, Val: row.Val}
	}

	encoded, err := codec.Marshal(body)
	if err != nil {
		return fault.Backup("encoding archive: %w", err)
	}
	payload := compress(encoded)

	var flags byte
	if len(options.Recipients) > 0 {
		payload, err = seal(payload, options.Recipients)
		if err != nil {
			return err
		}
		flags |= flagSealed
	}

	digest := blake3.Sum256(payload)

	header := make([]byte, 0, headerSize)
	header = append(header, magic...)
	header = append(header, flags)
	header = append(header, digest[:]...)

	if _, err := w.Write(header); err != nil {
		return fault.Backup("writing archive: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fault.Backup("writing archive: %w", err)
	}
	return nil
}

// Read reads and verifies an archive from r.
func Read(r io.Reader, options ReadOptions) (*Archive, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxArchiveSize+1))
	if err != nil {
		return nil, fault.Backup("reading archive: %w", err)
	}
	if len(data) > maxArchiveSize {
		return nil, fault.Backup("archive exceeds %d bytes", maxArchiveSize)
	}
	if len(data) < headerSize || string(data[:len(magic)]) != magic {
		return nil, fault.Backup("not a vaulter backup")
	}

	flags := data[len(magic)]
	if flags&^flagSealed != 0 {
		return nil, fault.Backup("unsupported archive flags %#02x", flags)
	}

	wantDigest := data[len(magic)+1 : headerSize]
	payload := data[headerSize:]
	gotDigest := blake3.Sum256(payload)
	if !bytes.Equal(gotDigest[:], wantDigest) {
		return nil, fault.Backup("archive digest mismatch: file is truncated or corrupted")
	}

	if flags&flagSealed != 0 {
		if options.Identity == nil {
			return nil, fault.Backup("archive is sealed: an identity is required")
		}
		payload, err = open(payload, options.Identity)
		if err != nil {
			return nil, err
		}
	}

	encoded, err := decompress(payload)
	if err != nil {
		return nil, err
	}

	var body archiveBody
	if err := codec.Unmarshal(encoded, &body); err != nil {
		return nil, fault.Backup("decoding archive: %w", err)
	}
	if body.Version != FormatVersion {
		return nil, fault.Backup("unsupported archive version %d", body.Version)
	}

	archive := &Archive{
		Version:   body.Version,
		CreatedAt: body.CreatedAt,
		Rows:      make([]store.Row, len(body.Rows)),
	}
	seen := make(map[string]struct{}, len(body.Rows))
	for i, entry := range body.Rows {
		if err := validateEntry(entry); err != nil {
			return nil, fault.Backup("row %d: %w", i, err)
		}
		if _, duplicate := seen[entry.Key]; duplicate {
			return nil, fault.Backup("row %d: duplicate key %s", i, entry.Key)
		}
		seen[entry.Key] = struct{}{}
		archive.Rows[i] = store.Row{Key: entry.Key, Val: entry.Val}
	}
	return archive, nil
}

// validateEntry applies the checks the store would apply on Get,
// short of decryption.
func validateEntry(entry entryBody) error {
	if !record.ValidLength(entry.Key) {
		return fmt.Errorf("key must be between %d and %d characters", record.MinLength, record.MaxLength)
	}
	if _, _, err := sealed.DecodeEnvelope(entry.Val); err != nil {
		return fmt.Errorf("value for %s: %w", entry.Key, err)
	}
	return nil
}
