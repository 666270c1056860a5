// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

// withBuildVars overrides the ldflags variables for one test.
func withBuildVars(t *testing.T, commit, dirty, buildTime, semver string) {
	t.Helper()
	saved := [4]string{GitCommit, GitDirty, BuildTime, Version}
	GitCommit, GitDirty, BuildTime, Version = commit, dirty, buildTime, semver
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime, Version = saved[0], saved[1], saved[2], saved[3]
	})
}

func TestInfo(t *testing.T) {
	withBuildVars(t, "abc1234", "false", "2026-02-10T12:00:00Z", "1.2.3")
	if got, want := Info(), "1.2.3 (abc1234, 2026-02-10T12:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfoDirty(t *testing.T) {
	withBuildVars(t, "abc1234", "true", "2026-02-10T12:00:00Z", "1.2.3")
	if got, want := Info(), "1.2.3 (abc1234-dirty, 2026-02-10T12:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestFull(t *testing.T) {
	withBuildVars(t, "abc1234", "false", "now", "1.2.3")
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q, want prefix %q", full, Info())
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q, missing Go version %q", full, runtime.Version())
	}
	if !strings.Contains(full, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() = %q, missing platform", full)
	}
}

func TestShortAndInjectedCommit(t *testing.T) {
	withBuildVars(t, "deadbee", "false", "now", "2.0.0")
	if got := Short(); got != "2.0.0" {
		t.Errorf("Short() = %q, want %q", got, "2.0.0")
	}
	if got := Commit(); got != "deadbee" {
		t.Errorf("Commit() = %q, want %q", got, "deadbee")
	}
}
