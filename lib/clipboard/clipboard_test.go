// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vaulter-dev/vaulter/lib/fault"
)

// fakeLookPath resolves only the names in installed.
func fakeLookPath(installed ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, candidate := range installed {
			if candidate == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestSelect(t *testing.T) {
	linux, err := Candidates("linux")
	if err != nil {
		t.Fatalf("Candidates(linux): %v", err)
	}

	tests := []struct {
		name      string
		installed []string
		want      string
		wantArgs  []string
	}{
		{"wayland preferred", []string{"wl-copy", "xsel", "xclip"}, "wl-copy", nil},
		{"xsel before xclip", []string{"xsel", "xclip"}, "xsel", []string{"--input", "--clipboard"}},
		{"xclip fallback", []string{"xclip"}, "xclip", []string{"-selection", "clipboard"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			selected, err := Select(linux, fakeLookPath(test.installed...))
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			tool, ok := selected.(Tool)
			if !ok {
				t.Fatalf("Select returned %T, want Tool", selected)
			}
			if tool.Name != test.want {
				t.Errorf("selected %q, want %q", tool.Name, test.want)
			}
			if tool.Path != "/usr/bin/"+test.want {
				t.Errorf("Path = %q, want %q", tool.Path, "/usr/bin/"+test.want)
			}
			if strings.Join(tool.Args, " ") != strings.Join(test.wantArgs, " ") {
				t.Errorf("Args = %v, want %v", tool.Args, test.wantArgs)
			}
		})
	}
}

func TestSelectNothingInstalled(t *testing.T) {
	linux, _ := Candidates("linux")
	_, err := Select(linux, fakeLookPath())
	if !fault.Is(err, fault.KindClipboard) {
		t.Fatalf("err = %v, want KindClipboard", err)
	}
	if got, want := err.Error(), "you need to install wl-copy, xsel or xclip"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestSelectEmptyCandidates(t *testing.T) {
	_, err := Select(nil, fakeLookPath("anything"))
	if !fault.Is(err, fault.KindClipboard) {
		t.Errorf("err = %v, want KindClipboard", err)
	}
}

func TestCandidates(t *testing.T) {
	darwin, err := Candidates("darwin")
	if err != nil || len(darwin) != 1 || darwin[0].Name != "pbcopy" {
		t.Errorf("Candidates(darwin) = %v, %v; want [pbcopy]", darwin, err)
	}

	_, err = Candidates("windows")
	if !fault.Is(err, fault.KindClipboard) {
		t.Fatalf("Candidates(windows): err = %v, want KindClipboard", err)
	}
	if got, want := err.Error(), "no clipboard support for windows"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func requireShell(t *testing.T) string {
	t.Helper()
	shell, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return shell
}

func TestToolCopyWritesStdin(t *testing.T) {
	shell := requireShell(t)
	output := filepath.Join(t.TempDir(), "clipboard")

	tool := Tool{Name: "fake-copy", Path: shell, Args: []string{"-c", `cat > "$0"`, output}}
	if err := tool.Copy("sk-abcd1234"); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading fake clipboard: %v", err)
	}
	if string(got) != "sk-abcd1234" {
		t.Errorf("clipboard contents = %q, want %q", got, "sk-abcd1234")
	}
}

func TestToolCopySpawnFailure(t *testing.T) {
	tool := Tool{Name: "missing-helper", Path: filepath.Join(t.TempDir(), "missing-helper")}
	err := tool.Copy("text")
	if !fault.Is(err, fault.KindClipboard) {
		t.Fatalf("err = %v, want KindClipboard", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to spawn missing-helper: ") {
		t.Errorf("error = %q, want spawn failure", err.Error())
	}
}

func TestToolCopyNonZeroExit(t *testing.T) {
	shell := requireShell(t)
	tool := Tool{Name: "failing-helper", Path: shell, Args: []string{"-c", "cat > /dev/null; exit 3"}}

	err := tool.Copy("text")
	if !fault.Is(err, fault.KindClipboard) {
		t.Fatalf("err = %v, want KindClipboard", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to wait for failing-helper: ") {
		t.Errorf("error = %q, want wait failure", err.Error())
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("err = %v, want wrapped exit status 3", err)
	}
}
