// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"log/slog"
	"os/exec"

	"github.com/vaulter-dev/vaulter/cmd/vaulter/cli"
	"github.com/vaulter-dev/vaulter/lib/clipboard"
	"github.com/vaulter-dev/vaulter/lib/clock"
	"github.com/vaulter-dev/vaulter/lib/config"
	"github.com/vaulter-dev/vaulter/lib/sealed"
	"github.com/vaulter-dev/vaulter/lib/store"
)

// Environment carries the process-level inputs commands read.
type Environment struct {
	Config *config.Config

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Clock stamps backup archives and generated identities.
	Clock clock.Clock

	// Clipboard replaces clipboard detection when non-nil.
	Clipboard clipboard.Clipboard
}

// openStore creates the database directory if needed and opens the
// store. The caller closes it.
func (e *Environment) openStore(logger *slog.Logger) (*store.Store, error) {
	path, err := e.Config.EnsureDatabaseDir()
	if err != nil {
		return nil, err
	}
	return store.Open(store.Config{
		Path:        path,
		BusyTimeout: e.Config.Database.BusyTimeout,
		Logger:      logger,
	})
}

// deriveCipher reads the passphrase and derives the store key. The
// caller closes the returned context.
func (e *Environment) deriveCipher(logger *slog.Logger) (*sealed.Context, error) {
	passphrase, err := cli.ReadPassphrase(e.Stdin, e.Stderr)
	if err != nil {
		return nil, err
	}
	defer passphrase.Close()

	logger.Debug("deriving store key")
	return sealed.Derive(passphrase.Bytes())
}

// detectClipboard returns the injected clipboard, the first installed tool
// from the config's list, or the platform default.
func (e *Environment) detectClipboard() (clipboard.Clipboard, error) {
	if e.Clipboard != nil {
		return e.Clipboard, nil
	}
	if configured := e.Config.Clipboard.Tools; len(configured) > 0 {
		tools := make([]clipboard.Tool, len(configured))
		for i, tool := range configured {
			tools[i] = clipboard.Tool{Name: tool.Name, Args: tool.Args}
		}
		return clipboard.Select(tools, exec.LookPath)
	}
	return clipboard.Detect()
}

// clockOrReal returns the configured clock, defaulting to the wall clock.
func (e *Environment) clockOrReal() clock.Clock {
	if e.Clock == nil {
		return clock.Real()
	}
	return e.Clock
}
