// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed turns a passphrase into a symmetric key and seals
// secret values under it.
//
// [Derive] runs Argon2id over the passphrase with a fixed salt and
// keeps the 32-byte result in a [secret.Buffer] (mmap-backed, locked
// against swap, excluded from core dumps). [Context.Encrypt] and
// [Context.Decrypt] convert between UTF-8 plaintext and the envelope
// stored in the database:
//
//	base64std( nonce[12] || ChaCha20-Poly1305(plaintext) || tag[16] )
//
// Each encryption draws a fresh random nonce, so sealing the same value
// twice produces different envelopes. Decryption fails closed: a wrong
// key, a flipped bit anywhere in the envelope, or a truncated envelope
// all yield a fault.KindCrypto error and never partial plaintext.
//
// # Fixed salt
//
// [Salt] is a constant shared by every installation, so equal
// passphrases derive equal keys everywhere and a precomputed dictionary
// applies to all stores at once. Changing it would make every existing
// store unreadable, so it stays as is until the envelope format gains a
// per-store salt.
//
// Depends on golang.org/x/crypto (argon2, chacha20poly1305), lib/secret,
// and lib/fault.
package sealed
