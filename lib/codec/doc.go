// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides vaulter's CBOR encoding configuration, used
// for backup archives.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes, so an archive's
// digest depends only on its contents.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types serialized only as CBOR carry `cbor` struct tags.
package codec
