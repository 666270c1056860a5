// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package backup writes and reads portable archives of a secret store.
//
// An archive carries rows exactly as stored: every value is still a
// passphrase-sealed envelope, so a backup never contains plaintext and
// restoring it requires the same passphrase that wrote the rows.
//
// # File format
//
//	magic "VLTBAK\x00\x01"   8 bytes
//	flags                    1 byte, bit 0 set when age-sealed
//	BLAKE3-256(payload)     32 bytes
//	payload                  zstd(CBOR(archive)), optionally age-encrypted
//
// The archive body is CBOR with core deterministic encoding (see
// lib/codec), so identical rows and timestamps produce identical
// bytes. The digest detects truncation and corruption before any
// decoding is attempted; it is not authentication. For confidentiality
// of key names and authenticity against a deliberate attacker, seal the
// archive to one or more age recipients: [WriteOptions].Recipients on
// write and [ReadOptions].Identity on read.
//
// [Read] rejects archives whose rows would not be accepted by the
// store: keys outside the record length bounds, duplicate keys, or
// values that are not structurally valid envelopes.
package backup
