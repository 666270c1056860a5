// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds a passphrase or key outside the Go heap. The mapping is
// excluded from core dumps where the platform allows it, locked against
// swapping when the memlock limit permits, and zeroed on Close.
//
// A Buffer must not be copied after creation. After Close, Bytes
// panics.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	locked bool
	closed bool
}

// New maps a zero-filled buffer of size bytes. The caller closes it.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}
	if err := excludeFromDumps(data); err != nil {
		unix.Munmap(data)
		return nil, err
	}
	locked, err := lock(data)
	if err != nil {
		unix.Munmap(data)
		return nil, err
	}

	return &Buffer{data: data, locked: locked}, nil
}

// lock pins data in RAM. An unprivileged process over its
// RLIMIT_MEMLOCK gets ENOMEM or EPERM; the buffer then stays unlocked
// instead of failing the command.
func lock(data []byte) (bool, error) {
	err := unix.Mlock(data)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, unix.ENOMEM), errors.Is(err, unix.EPERM), errors.Is(err, unix.EAGAIN):
		return false, nil
	default:
		return false, fmt.Errorf("secret: mlock failed: %w", err)
	}
}

// NewFromBytes moves source into a new buffer: the bytes are copied and
// source is zeroed in place.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(source))
	if err != nil {
		Zero(source)
		return nil, err
	}
	copy(buffer.data, source)
	Zero(source)
	return buffer, nil
}

// Bytes returns the mapped region itself. The slice must not outlive
// the Buffer.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data
}

// String never reveals the contents, so a Buffer passed to a logger or
// a format verb prints a placeholder.
func (b *Buffer) String() string {
	return "[REDACTED]"
}

// Len returns the size of the secret, or 0 once closed.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Locked reports whether the buffer is pinned in RAM.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Close zeroes the buffer and releases the mapping. Close is
// idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	Zero(b.data)

	var errs []error
	if b.locked {
		if err := unix.Munlock(b.data); err != nil {
			errs = append(errs, fmt.Errorf("secret: munlock failed: %w", err))
		}
	}
	if err := unix.Munmap(b.data); err != nil {
		errs = append(errs, fmt.Errorf("secret: munmap failed: %w", err))
	}
	b.data = nil
	return errors.Join(errs...)
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	clear(data)
}
