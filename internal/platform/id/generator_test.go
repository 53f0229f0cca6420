package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		v, err := gen.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		parsed, err := uuid.Parse(v)
		if err != nil {
			t.Fatalf("id %q is not a uuid: %v", v, err)
		}
		if parsed.Version() != 7 {
			t.Fatalf("unexpected uuid version: got=%d want=7", parsed.Version())
		}
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = struct{}{}
	}
}
