// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// vaulter is a CLI vault for key-value pairs. Values are encrypted with
// a key derived from the user's passphrase and stored in a local SQLite
// database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vaulter-dev/vaulter/cmd/vaulter/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an error carrying
		// the desired exit code. Don't print a redundant "error:" line
		// for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
