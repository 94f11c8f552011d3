// Package output writes the JSON envelope used by --json command modes.
package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/tidwall/pretty"

	"github.com/hmans/todos/internal/todo"
)

// Error codes reported in the "code" field.
const (
	ErrNotFound   = "NOT_FOUND"
	ErrValidation = "VALIDATION_ERROR"
	ErrConnection = "CONNECTION_ERROR"
	ErrServer     = "SERVER_ERROR"
	ErrFileError  = "FILE_ERROR"
)

// ErrReported is returned after an error envelope has been written,
// so callers exit non-zero without printing the error again.
var ErrReported = errors.New("error reported")

// Writer receives all envelopes. Tests may replace it.
var Writer io.Writer = os.Stdout

// Response is the JSON envelope.
type Response struct {
	Success bool        `json:"success"`
	Todo    *todo.Todo  `json:"todo,omitempty"`
	Todos   []todo.Todo `json:"todos,omitempty"`
	Count   int         `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// JSON writes resp to Writer.
func JSON(resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = Writer.Write(pretty.Pretty(data))
	return err
}

// Success writes a single todo.
func Success(t *todo.Todo, message string) error {
	return JSON(Response{Success: true, Todo: t, Message: message})
}

// SuccessMultiple writes a list of todos. An empty list is written as [].
func SuccessMultiple(todos []todo.Todo) error {
	if todos == nil {
		todos = []todo.Todo{}
	}
	data, err := json.Marshal(struct {
		Success bool        `json:"success"`
		Todos   []todo.Todo `json:"todos"`
		Count   int         `json:"count"`
	}{true, todos, len(todos)})
	if err != nil {
		return err
	}
	_, err = Writer.Write(pretty.Pretty(data))
	return err
}

// SuccessMessage writes a success envelope carrying only a message.
func SuccessMessage(message string) error {
	return JSON(Response{Success: true, Message: message})
}

// Error writes an error envelope and returns ErrReported.
func Error(code, message string) error {
	if err := JSON(Response{Success: false, Error: message, Code: code}); err != nil {
		return err
	}
	return ErrReported
}
