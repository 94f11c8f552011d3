package graph

import (
	"errors"

	"github.com/hmans/todos/internal/search"
	"github.com/hmans/todos/internal/todo"
	"go.uber.org/zap"
)

//go:generate go tool gqlgen generate

// ErrSearchDisabled is returned by searchTodos when the server runs without an index.
var ErrSearchDisabled = errors.New("search is disabled")

// Resolver is the root resolver for the GraphQL schema.
// It holds the todo store and, when search is enabled, the title index.
type Resolver struct {
	Store       *todo.Store
	Index       *search.Index
	SearchLimit int
	Logger      *zap.Logger
}

func (r *Resolver) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func toPointers(todos []todo.Todo) []*todo.Todo {
	result := make([]*todo.Todo, len(todos))
	for i := range todos {
		result[i] = &todos[i]
	}
	return result
}
