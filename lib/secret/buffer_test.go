// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	buffer, err := New(32)
	if err != nil {
		t.Fatalf("New(32): %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 32 {
		t.Errorf("Len() = %d, want 32", buffer.Len())
	}

	// mmap returns zero-filled pages.
	for index, value := range buffer.Bytes() {
		if value != 0 {
			t.Fatalf("byte %d = %d, want 0", index, value)
		}
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) succeeded, want error", size)
		}
	}
}

func TestNewFromBytesZerosSource(t *testing.T) {
	source := []byte("correct horse battery staple")
	want := string(source)

	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if got := string(buffer.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source byte %d not zeroed: %d", index, value)
		}
	}
}

func TestNewFromBytesEmpty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Fatal("NewFromBytes(nil) succeeded, want error")
	}
}

func TestCloseReleasesAndIsIdempotent(t *testing.T) {
	buffer, err := New(16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	copy(buffer.Bytes(), "derived-key-data")

	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if buffer.data != nil {
		t.Error("data not released after Close")
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestBytesAfterClosePanics(t *testing.T) {
	buffer, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buffer.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("Bytes after Close did not panic")
		}
	}()
	buffer.Bytes()
}

func TestStringRedacts(t *testing.T) {
	buffer, err := NewFromBytes([]byte("sk-abcd1234"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	for _, formatted := range []string{
		buffer.String(),
		fmt.Sprintf("%v", buffer),
		fmt.Sprintf("%s", buffer),
	} {
		if strings.Contains(formatted, "sk-abcd1234") {
			t.Errorf("formatted buffer reveals contents: %q", formatted)
		}
	}
}

func TestLenAfterClose(t *testing.T) {
	buffer, err := New(24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Either state is valid; it depends on RLIMIT_MEMLOCK.
	t.Logf("locked = %v", buffer.Locked())

	buffer.Close()
	if buffer.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", buffer.Len())
	}
}

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	Zero(data)
	for index, value := range data {
		if value != 0 {
			t.Errorf("byte %d = %d, want 0", index, value)
		}
	}
}
