// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable wall clock for testability.
//
// Production code accepts a Clock instead of calling time.Now
// directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a clock that moves only when
// Advance or Set is called, so timestamps written into backup archives
// are reproducible:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	archive := backup.NewArchive(rows, c)
//	c.Advance(time.Hour)
package clock
