// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadLine reads a single line from reader into a protected buffer.
// The trailing line terminator (LF or CRLF) is stripped; other
// whitespace is preserved because it may be part of a passphrase.
// Returns an error if the line is empty.
func ReadLine(reader io.Reader) (*Buffer, error) {
	buffered := bufio.NewReader(reader)
	line, err := buffered.ReadBytes('\n')
	if err != nil && err != io.EOF {
		Zero(line)
		return nil, fmt.Errorf("reading line: %w", err)
	}

	trimmed := bytes.TrimRight(line, "\r\n")
	if len(trimmed) == 0 {
		Zero(line)
		return nil, fmt.Errorf("secret is empty")
	}

	buffer, err := NewFromBytes(trimmed)
	// Zero the terminator bytes not covered by trimmed.
	Zero(line)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

// ReadFromPath reads a secret from a file path, or from stdin if path is
// "-". Leading and trailing whitespace is trimmed. Returns an error if
// the source is empty after trimming.
func ReadFromPath(path string) (*Buffer, error) {
	var data []byte

	if path == "-" {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			Zero(data)
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret is empty")
	}

	buffer, err := NewFromBytes(trimmed)
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
