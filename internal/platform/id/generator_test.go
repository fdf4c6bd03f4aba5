package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		value, err := gen.NewID()
		if err != nil {
			t.Fatalf("NewID error: %v", err)
		}
		parsed, err := uuid.Parse(value)
		if err != nil {
			t.Fatalf("invalid uuid %q: %v", value, err)
		}
		if parsed.Version() != 7 {
			t.Fatalf("expected v7, got %d", parsed.Version())
		}
		if _, dup := seen[value]; dup {
			t.Fatalf("duplicate id %s", value)
		}
		seen[value] = struct{}{}
	}
}

func TestSequence(t *testing.T) {
	seq := &Sequence{Prefix: "team-"}
	first, _ := seq.NewID()
	second, _ := seq.NewID()
	if first != "team-1" || second != "team-2" {
		t.Fatalf("unexpected sequence %s %s", first, second)
	}
}
