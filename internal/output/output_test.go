package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hmans/todos/internal/todo"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := Writer
	Writer = &buf
	t.Cleanup(func() { Writer = orig })
	return &buf
}

func TestSuccess(t *testing.T) {
	buf := captureOutput(t)

	if err := Success(&todo.Todo{ID: "1", Title: "Buy milk"}, "Todo added"); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var resp Response
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !resp.Success || resp.Todo == nil || resp.Todo.ID != "1" || resp.Message != "Todo added" {
		t.Errorf("Success() wrote %+v", resp)
	}
}

func TestSuccessMultipleEmpty(t *testing.T) {
	buf := captureOutput(t)

	if err := SuccessMultiple(nil); err != nil {
		t.Fatalf("SuccessMultiple() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	todos, ok := raw["todos"].([]any)
	if !ok || len(todos) != 0 {
		t.Errorf("todos = %#v, want empty array", raw["todos"])
	}
	if raw["count"] != float64(0) {
		t.Errorf("count = %v, want 0", raw["count"])
	}
}

func TestSuccessMultiple(t *testing.T) {
	buf := captureOutput(t)

	todos := []todo.Todo{{ID: "1", Title: "a"}, {ID: "2", Title: "b", IsCompleted: true}}
	if err := SuccessMultiple(todos); err != nil {
		t.Fatalf("SuccessMultiple() error = %v", err)
	}

	var resp Response
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Count != 2 || len(resp.Todos) != 2 || !resp.Todos[1].IsCompleted {
		t.Errorf("SuccessMultiple() wrote %+v", resp)
	}
}

func TestError(t *testing.T) {
	buf := captureOutput(t)

	err := Error(ErrNotFound, todo.MsgNotFound)
	if !errors.Is(err, ErrReported) {
		t.Errorf("Error() = %v, want ErrReported", err)
	}

	var resp Response
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Error != todo.MsgNotFound || resp.Code != ErrNotFound {
		t.Errorf("Error() wrote %+v", resp)
	}
}

func TestSuccessMessage(t *testing.T) {
	buf := captureOutput(t)

	if err := SuccessMessage("nothing to do"); err != nil {
		t.Fatalf("SuccessMessage() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"message": "nothing to do"`)) {
		t.Errorf("output = %s", buf.String())
	}
}
