// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/vaulter-dev/vaulter/lib/fault"
	"github.com/vaulter-dev/vaulter/lib/secret"
)

const (
	// KeySize is the size in bytes of the derived ChaCha20-Poly1305 key.
	KeySize = chacha20poly1305.KeySize

	// NonceSize is the size in bytes of the per-envelope nonce.
	NonceSize = chacha20poly1305.NonceSize

	// TagSize is the size in bytes of the Poly1305 authentication tag
	// appended to every ciphertext.
	TagSize = chacha20poly1305.Overhead
)

// Salt is the fixed Argon2 salt. Exactly 32 bytes. Every store ever
// written depends on this value.
var Salt = []byte("vaulter_fixed_salt_v1_no_change!")

// Argon2id cost parameters: memory 19 MiB, two passes, one lane.
const (
	argonTime    uint32 = 2
	argonMemory  uint32 = 19 * 1024
	argonThreads uint8  = 1
)

// Context holds the key derived from one passphrase. It is created once
// per invocation and used for every encrypt/decrypt call during it.
//
// The caller must call Close when done; after Close, Encrypt and
// Decrypt panic (via secret.Buffer's closed check).
type Context struct {
	key *secret.Buffer
}

// Derive runs Argon2id over passphrase with the fixed [Salt] and
// returns a Context holding the 32-byte key. The passphrase is
// borrowed and not modified.
func Derive(passphrase []byte) (*Context, error) {
	derived := argon2.IDKey(passphrase, Salt, argonTime, argonMemory, argonThreads, KeySize)

	// NewFromBytes copies into mmap memory and zeros the heap slice.
	key, err := secret.NewFromBytes(derived)
	if err != nil {
		secret.Zero(derived)
		return nil, fault.Crypto("failed to derive key: %w", err)
	}
	return &Context{key: key}, nil
}

// Close zeroes and releases the derived key. Idempotent.
func (c *Context) Close() error {
	return c.key.Close()
}

// Encrypt seals plaintext under a fresh random nonce and returns the
// base64 envelope.
func (c *Context) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.New(c.key.Bytes())
	if err != nil {
		return "", fault.Crypto("encryption failed: %w", err)
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fault.Crypto("encryption failed: generating nonce: %w", err)
	}

	// Seal appends ciphertext+tag after the nonce.
	envelope := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	copy(envelope, nonce[:])
	envelope = aead.Seal(envelope, nonce[:], []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt opens a base64 envelope produced by Encrypt. Every failure
// (malformed base64, short envelope, authentication failure, non-UTF-8
// plaintext) is a fault.KindCrypto error.
func (c *Context) Decrypt(encoded string) (string, error) {
	nonce, ciphertext, err := DecodeEnvelope(encoded)
	if err != nil {
		return "", err
	}

	aead, err := chacha20poly1305.New(c.key.Bytes())
	if err != nil {
		return "", fault.Crypto("decryption failed: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fault.Crypto("decryption failed: %w", err)
	}

	if !utf8.Valid(plaintext) {
		secret.Zero(plaintext)
		return "", fault.Crypto("invalid UTF-8 in decrypted value")
	}
	return string(plaintext), nil
}

// DecodeEnvelope base64-decodes an envelope and splits it into nonce
// and ciphertext (which still carries the tag). It checks structure
// only; it needs no key and does not authenticate.
func DecodeEnvelope(encoded string) (nonce, ciphertext []byte, err error) {
	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, fault.Crypto("base64 decode failed: %w", err)
	}
	if len(combined) < NonceSize {
		return nil, nil, fault.Crypto("invalid encrypted data")
	}
	return combined[:NonceSize], combined[NonceSize:], nil
}
