// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error by the layer and cause of the failure.
type Kind string

const (
	// KindInvalidKey indicates a secret key outside the allowed length.
	KindInvalidKey Kind = "invalid_key"

	// KindInvalidVal indicates a secret value outside the allowed length.
	KindInvalidVal Kind = "invalid_val"

	// KindCrypto covers key derivation, encryption, decryption, and
	// authentication failures, plus use of a store with no bound cipher.
	KindCrypto Kind = "crypto"

	// KindStore covers open, schema, query, and row-shape failures of
	// the persistent store, including "not found".
	KindStore Kind = "store"

	// KindClipboard covers clipboard capability probing and the
	// spawn/write/wait steps of the clipboard helper process.
	KindClipboard Kind = "clipboard"

	// KindConfig indicates an unreadable or invalid configuration file.
	KindConfig Kind = "config"

	// KindBackup indicates a malformed, corrupted, or unreadable backup
	// archive.
	KindBackup Kind = "backup"
)

// Error is a categorized error. Error() returns the wrapped message
// only; the kind travels separately.
type Error struct {
	// Kind classifies the error for programmatic handling.
	Kind Kind

	// Err is the underlying error with the human-readable message.
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error so errors.Is and errors.As can
// walk through the Error wrapper.
func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the given kind. Returns nil if err is nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// InvalidKey creates a key validation error.
func InvalidKey(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidKey, Err: fmt.Errorf(format, args...)}
}

// InvalidVal creates a value validation error.
func InvalidVal(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidVal, Err: fmt.Errorf(format, args...)}
}

// Crypto creates a cryptographic error.
func Crypto(format string, args ...any) *Error {
	return &Error{Kind: KindCrypto, Err: fmt.Errorf(format, args...)}
}

// Store creates a persistent store error.
func Store(format string, args ...any) *Error {
	return &Error{Kind: KindStore, Err: fmt.Errorf(format, args...)}
}

// Clipboard creates a clipboard delivery error.
func Clipboard(format string, args ...any) *Error {
	return &Error{Kind: KindClipboard, Err: fmt.Errorf(format, args...)}
}

// Config creates a configuration error.
func Config(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

// Backup creates a backup archive error.
func Backup(format string, args ...any) *Error {
	return &Error{Kind: KindBackup, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// "" if the chain contains none.
func KindOf(err error) Kind {
	var categorized *Error
	if errors.As(err, &categorized) {
		return categorized.Kind
	}
	return ""
}

// Is reports whether err's outermost *Error has the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
