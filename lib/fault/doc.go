// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package fault defines the error kinds shared by every vaulter layer.
//
// Every error that crosses a package boundary is an [*Error] carrying a
// [Kind] and the underlying error with the human-readable message. The
// kind lets callers (the CLI, tests) branch on the failure category
// without parsing message text; the wrapped error preserves the full
// chain for errors.Is and errors.As.
//
// Use the kind-specific constructors ([InvalidKey], [Crypto], [Store],
// and so on) rather than building an Error directly, and [KindOf] or
// [Is] to classify an error returned from another package.
//
// Decryption failures (wrong passphrase, tampered ciphertext, corrupted
// row) all surface as [KindCrypto]. They are indistinguishable by
// construction: authenticated encryption fails closed and reports only
// that the tag did not verify.
//
// This package has no vaulter-internal dependencies.
package fault
