// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/vaulter-dev/vaulter/lib/fault"
)

// Clipboard places text on the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// Tool is a clipboard helper program that reads the text to copy from
// its standard input.
type Tool struct {
	// Name is the program name, resolved through PATH by Select.
	Name string

	// Args are passed to the program verbatim.
	Args []string

	// Path is the resolved executable. When empty, Name is executed
	// and resolved by the operating system at spawn time.
	Path string
}

// Copy runs the tool with text on stdin. Spawn, write, and wait
// failures are reported separately, all as fault.KindClipboard. A
// helper that exits non-zero counts as a wait failure.
func (t Tool) Copy(text string) error {
	executable := t.Path
	if executable == "" {
		executable = t.Name
	}

	command := exec.Command(executable, t.Args...)
	stdin, err := command.StdinPipe()
	if err != nil {
		return fault.Clipboard("failed to spawn %s: %w", t.Name, err)
	}
	if err := command.Start(); err != nil {
		return fault.Clipboard("failed to spawn %s: %w", t.Name, err)
	}

	_, writeErr := stdin.Write([]byte(text))
	closeErr := stdin.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		command.Process.Kill()
		command.Wait()
		return fault.Clipboard("failed to write to %s: %w", t.Name, writeErr)
	}

	if err := command.Wait(); err != nil {
		return fault.Clipboard("failed to wait for %s: %w", t.Name, err)
	}
	return nil
}

// Candidates returns the helpers tried for goos, in preference order.
// Returns a fault.KindClipboard error for platforms with no known
// helper.
func Candidates(goos string) ([]Tool, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Tool{
			{Name: "wl-copy"},
			{Name: "xsel", Args: []string{"--input", "--clipboard"}},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
		}, nil
	case "darwin":
		return []Tool{{Name: "pbcopy"}}, nil
	default:
		return nil, fault.Clipboard("no clipboard support for %s", goos)
	}
}

// Detect returns the first helper for the running platform that is
// installed.
func Detect() (Clipboard, error) {
	candidates, err := Candidates(runtime.GOOS)
	if err != nil {
		return nil, err
	}
	return Select(candidates, exec.LookPath)
}

// Select returns the first candidate that lookPath resolves, with its
// Path filled in. When none resolves the error names every candidate.
func Select(candidates []Tool, lookPath func(string) (string, error)) (Clipboard, error) {
	if len(candidates) == 0 {
		return nil, fault.Clipboard("no clipboard tools configured")
	}
	for _, candidate := range candidates {
		path, err := lookPath(candidate.Name)
		if err != nil {
			continue
		}
		candidate.Path = path
		return candidate, nil
	}

	names := make([]string, len(candidates))
	for i, candidate := range candidates {
		names[i] = candidate.Name
	}
	return nil, fault.Clipboard("you need to install %s", joinAlternatives(names))
}

// joinAlternatives renders names as "a", "a or b", or "a, b or c".
func joinAlternatives(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
