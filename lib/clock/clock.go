// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the wall clock for testability. Production code
// injects Real(); tests inject Fake() with a pinned time.
//
// Code that stamps data with the current time (backup archives, for
// example) accepts a Clock instead of calling time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
