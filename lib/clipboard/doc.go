// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package clipboard delivers a decrypted secret to the desktop
// clipboard through an external helper program.
//
// A [Tool] names a helper and its arguments. Copy starts the helper,
// writes the text to its stdin, closes stdin, and waits for it to
// exit. Nothing is written to disk and the text never appears on the
// helper's command line.
//
// [Detect] picks the first helper available for the running platform:
// wl-copy, xsel, or xclip on Linux, pbcopy on macOS. [Select] is the
// same probe over an explicit candidate list with an injectable PATH
// lookup, used for configured tool lists and in tests.
package clipboard
