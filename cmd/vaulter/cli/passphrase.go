// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vaulter-dev/vaulter/lib/secret"
)

// PassphraseEnv names the environment variable that supplies the store
// passphrase non-interactively.
const PassphraseEnv = "VAULTER_PASSPHRASE"

// ReadPassphrase returns the store passphrase in a secret.Buffer. The
// sources, in order: a non-empty VAULTER_PASSPHRASE; an echo-disabled
// prompt on prompt when stdin is a terminal; one line read from stdin
// with its line ending removed.
func ReadPassphrase(stdin io.Reader, prompt io.Writer) (*secret.Buffer, error) {
	if value := os.Getenv(PassphraseEnv); value != "" {
		return secret.NewFromBytes([]byte(value))
	}

	// Read from the terminal with echo disabled.
	if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(prompt, "Enter encryption passphrase: ")
		passphraseBytes, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
		if len(passphraseBytes) == 0 {
			return nil, fmt.Errorf("passphrase cannot be empty")
		}

		buffer, err := secret.NewFromBytes(passphraseBytes)
		if err != nil {
			secret.Zero(passphraseBytes)
			return nil, err
		}
		return buffer, nil
	}

	buffer, err := secret.ReadLine(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase from stdin: %w", err)
	}
	return buffer, nil
}
