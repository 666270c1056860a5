// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds the passphrase, the derived store key, and age
// identities in memory mapped outside the Go heap.
//
// A [Buffer] is an anonymous mmap region. On Linux it is excluded from
// core dumps with madvise(MADV_DONTDUMP). It is mlocked against swap
// when RLIMIT_MEMLOCK allows; [Buffer.Locked] reports the outcome. Close
// zeroes the region and unmaps it.
//
// Constructors:
//
//   - [New] allocates a zero-filled buffer
//   - [NewFromBytes] moves a heap slice into a buffer, zeroing the source
//   - [ReadLine] reads one line (a piped passphrase)
//   - [ReadFromPath] reads a whole file or stdin (an age identity file)
//
// [Buffer.Bytes] returns the mapped region itself. [Buffer.String]
// always returns a placeholder, so formatting a Buffer never prints its
// contents.
package secret
