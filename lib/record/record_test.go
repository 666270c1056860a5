// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vaulter-dev/vaulter/lib/fault"
)

func TestNewBoundaries(t *testing.T) {
	valid := "ok"

	tests := []struct {
		name     string
		key      string
		value    string
		wantKind fault.Kind
	}{
		{name: "key length 1", key: "k", value: valid, wantKind: fault.KindInvalidKey},
		{name: "key length 2", key: "kk", value: valid},
		{name: "key length 128", key: strings.Repeat("k", 128), value: valid},
		{name: "key length 129", key: strings.Repeat("k", 129), value: valid, wantKind: fault.KindInvalidKey},
		{name: "empty key", key: "", value: valid, wantKind: fault.KindInvalidKey},
		{name: "value length 1", key: valid, value: "v", wantKind: fault.KindInvalidVal},
		{name: "value length 2", key: valid, value: "vv"},
		{name: "value length 128", key: valid, value: strings.Repeat("v", 128)},
		{name: "value length 129", key: valid, value: strings.Repeat("v", 129), wantKind: fault.KindInvalidVal},
		{name: "both invalid reports key", key: "k", value: "v", wantKind: fault.KindInvalidKey},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			record, err := New(test.key, test.value)
			if test.wantKind == "" {
				if err != nil {
					t.Fatalf("New: unexpected error: %v", err)
				}
				if record.Key() != test.key || record.Value() != test.value {
					t.Errorf("record = (%q, %q), want (%q, %q)", record.Key(), record.Value(), test.key, test.value)
				}
				return
			}
			if got := fault.KindOf(err); got != test.wantKind {
				t.Errorf("New error kind = %q (%v), want %q", got, err, test.wantKind)
			}
		})
	}
}

func TestLengthCountsBytes(t *testing.T) {
	// "é" is two bytes in UTF-8, so a single character meets the minimum.
	if _, err := New("é", "é"); err != nil {
		t.Errorf("New(\"é\", \"é\"): %v", err)
	}
	// 43 three-byte runes = 129 bytes.
	if _, err := New("key", strings.Repeat("€", 43)); !fault.Is(err, fault.KindInvalidVal) {
		t.Errorf("New with 129-byte value: err = %v, want KindInvalidVal", err)
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := New("k", "value")
	if got, want := err.Error(), "key must be between 2 and 128 characters"; got != want {
		t.Errorf("key error = %q, want %q", got, want)
	}
	_, err = New("key", "v")
	if got, want := err.Error(), "value must be between 2 and 128 characters"; got != want {
		t.Errorf("value error = %q, want %q", got, want)
	}
}

func TestStringRedactsValue(t *testing.T) {
	record, err := New("api-token", "sk-abcd1234")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, formatted := range []string{record.String(), fmt.Sprintf("%v", record), fmt.Sprint(record)} {
		if strings.Contains(formatted, "sk-abcd1234") {
			t.Errorf("formatted record %q leaks the value", formatted)
		}
		if !strings.Contains(formatted, "api-token") {
			t.Errorf("formatted record %q lost the key", formatted)
		}
	}
}
