// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package record defines the validated plaintext key/value pair that
// the CLI constructs from user input and the store reconstructs after
// decryption.
//
// A [Record] can only be obtained through [New], so holding one means
// both halves satisfy the length invariant. The same check runs on the
// way in (user input) and on the way out (decrypted value), so an
// authenticated value outside the bounds still surfaces as an error.
package record

import (
	"github.com/vaulter-dev/vaulter/lib/fault"
)

// Length bounds for keys and values, in bytes of UTF-8 text.
const (
	MinLength = 2
	MaxLength = 128
)

// Record is an immutable, validated key/value pair. The zero value is
// not a valid record.
type Record struct {
	key   string
	value string
}

// New validates key and value and returns the record. Fails with
// fault.KindInvalidKey or fault.KindInvalidVal when a length is
// outside [MinLength, MaxLength].
func New(key, value string) (Record, error) {
	if !ValidLength(key) {
		return Record{}, fault.InvalidKey("key must be between %d and %d characters", MinLength, MaxLength)
	}
	if !ValidLength(value) {
		return Record{}, fault.InvalidVal("value must be between %d and %d characters", MinLength, MaxLength)
	}
	return Record{key: key, value: value}, nil
}

// ValidLength reports whether s has a byte length within
// [MinLength, MaxLength].
func ValidLength(s string) bool {
	return len(s) >= MinLength && len(s) <= MaxLength
}

// Key returns the retrieval key.
func (r Record) Key() string { return r.key }

// Value returns the plaintext value.
func (r Record) Value() string { return r.value }

// String redacts the value so that a record formatted with %v or %s
// never prints plaintext.
func (r Record) String() string {
	return r.key + "=[REDACTED]"
}
