package uuid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("shape", func(t *testing.T) {
		id := New()
		if len(id) != 36 {
			t.Fatalf("expected 36 chars, got %d: %q", len(id), id)
		}
		parts := strings.Split(id, "-")
		if len(parts) != 5 {
			t.Fatalf("expected 5 groups, got %d: %q", len(parts), id)
		}
		if !IsValid(id) {
			t.Errorf("generated UUID should parse: %q", id)
		}
	})

	t.Run("version_and_variant", func(t *testing.T) {
		id := New()
		// Version nibble is the first char of the third group.
		if id[14] != '7' {
			t.Errorf("expected version 7, got %c in %q", id[14], id)
		}
		// Variant is the first char of the fourth group: 10xx binary.
		switch id[19] {
		case '8', '9', 'a', 'b':
		default:
			t.Errorf("expected RFC 4122 variant, got %c in %q", id[19], id)
		}
	})

	t.Run("unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := New()
			if seen[id] {
				t.Fatalf("duplicate UUID generated: %q", id)
			}
			seen[id] = true
		}
	})

	t.Run("time_ordered", func(t *testing.T) {
		// The leading 48 bits carry a millisecond timestamp, so IDs from
		// the same instant share a prefix and later IDs never sort before
		// earlier ones by more than clock granularity.
		a := New()
		b := New()
		if a[:8] > b[:8] {
			t.Errorf("expected non-decreasing timestamp prefix: %q then %q", a, b)
		}
	})
}

func TestIsValid(t *testing.T) {
	valid := []string{
		"0195f9b2-0000-7000-8000-000000000001",
		"550e8400-e29b-41d4-a716-446655440000",
	}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "42", "not-a-uuid", "0195f9b2-0000-7000-8000"}
	for _, s := range invalid {
		if IsValid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
