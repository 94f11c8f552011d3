package ui

import (
	"strings"
	"testing"

	"github.com/hmans/todos/internal/todo"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 8, "hello..."},
		{"multibyte", "äöüäöüäöü", 6, "äöü..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]todo.Todo{
		{ID: "1", Title: "Buy milk"},
		{ID: "12", Title: "Walk dog", IsCompleted: true},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("RenderTable() produced %d lines, want 4:\n%s", len(lines), out)
	}
	for _, want := range []string{"ID", "STATUS", "TITLE"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[2], "Buy milk") || !strings.Contains(lines[2], StatusOpenLabel) {
		t.Errorf("row 1 = %q", lines[2])
	}
	if !strings.Contains(lines[3], "Walk dog") || !strings.Contains(lines[3], StatusDoneLabel) {
		t.Errorf("row 2 = %q", lines[3])
	}
}

func TestRenderDetail(t *testing.T) {
	out := RenderDetail(todo.Todo{ID: "3", Title: "Write tests", IsCompleted: true})
	for _, want := range []string{"3", "Write tests", StatusDoneLabel} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDetail() missing %q in %q", want, out)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusLabel(false) != "open" || StatusLabel(true) != "done" {
		t.Errorf("StatusLabel() = %q/%q", StatusLabel(false), StatusLabel(true))
	}
}
