// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the vaulter
// binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// For example:
//
//	go build -ldflags "-X github.com/vaulter-dev/vaulter/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/vaulter
//
// These default to "unknown" / "0.1.0-dev" when not injected, which
// occurs during development builds and test runs.
package version
