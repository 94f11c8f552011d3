package todo

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSequence(t *testing.T) {
	var s Sequence
	for _, want := range []string{"1", "2", "3"} {
		got, err := s.NextID()
		if err != nil {
			t.Fatalf("NextID() error = %v", err)
		}
		if got != want {
			t.Errorf("NextID() = %q, want %q", got, want)
		}
	}
}

func TestNewIDGenerator(t *testing.T) {
	tests := []struct {
		strategy string
		check    func(t *testing.T, id string)
	}{
		{"", func(t *testing.T, id string) {
			if id != "1" {
				t.Errorf("id = %q, want %q", id, "1")
			}
		}},
		{StrategySequence, func(t *testing.T, id string) {
			if id != "1" {
				t.Errorf("id = %q, want %q", id, "1")
			}
		}},
		{StrategyNanoID, func(t *testing.T, id string) {
			if len(id) != 10 {
				t.Errorf("len(id) = %d, want 10", len(id))
			}
			for _, r := range id {
				if !strings.ContainsRune(nanoidAlphabet, r) {
					t.Errorf("id %q contains %q outside the alphabet", id, r)
				}
			}
		}},
		{StrategyUUID, func(t *testing.T, id string) {
			parsed, err := uuid.Parse(id)
			if err != nil {
				t.Fatalf("uuid.Parse(%q) error = %v", id, err)
			}
			if parsed.Version() != 4 {
				t.Errorf("uuid version = %d, want 4", parsed.Version())
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			g, err := NewIDGenerator(tt.strategy, 10)
			if err != nil {
				t.Fatalf("NewIDGenerator(%q) error = %v", tt.strategy, err)
			}
			id, err := g.NextID()
			if err != nil {
				t.Fatalf("NextID() error = %v", err)
			}
			tt.check(t, id)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := NewIDGenerator("snowflake", 0)
		want := `unknown id strategy "snowflake"`
		if err == nil || err.Error() != want {
			t.Errorf("NewIDGenerator(snowflake) error = %v, want %q", err, want)
		}
	})
}

func TestNanoIDDefaultLength(t *testing.T) {
	id, err := NanoID{}.NextID()
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if len(id) != 8 {
		t.Errorf("len(id) = %d, want 8", len(id))
	}
}

func TestErrorKinds(t *testing.T) {
	err := notFoundError(MsgDeleteNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(%v, ErrNotFound) = false", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("errors.Is(%v, ErrValidation) = true", err)
	}

	for kind, want := range map[Kind]string{
		KindNotFound:   "not found",
		KindValidation: "validation",
		Kind(0):        "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
