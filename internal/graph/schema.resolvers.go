package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hmans/todos/internal/search"
	"github.com/hmans/todos/internal/todo"
	"go.uber.org/zap"
)

// AddTodo is the resolver for the addTodo field.
func (r *mutationResolver) AddTodo(ctx context.Context, title string) (*todo.Todo, error) {
	t, err := r.Store.Add(title)
	if err != nil {
		return nil, err
	}
	r.log().Debug("todo added", zap.String("id", t.ID))
	return &t, nil
}

// MarkTodoCompleted is the resolver for the markTodoCompleted field.
func (r *mutationResolver) MarkTodoCompleted(ctx context.Context, id string) (*todo.Todo, error) {
	t, err := r.Store.MarkCompleted(id)
	if err != nil {
		return nil, err
	}
	r.log().Debug("todo completed", zap.String("id", t.ID))
	return &t, nil
}

// DeleteTodo is the resolver for the deleteTodo field.
func (r *mutationResolver) DeleteTodo(ctx context.Context, id string) (*todo.Todo, error) {
	t, err := r.Store.Delete(id)
	if err != nil {
		return nil, err
	}
	r.log().Debug("todo deleted", zap.String("id", t.ID))
	return &t, nil
}

// Todos is the resolver for the todos field.
func (r *queryResolver) Todos(ctx context.Context) ([]*todo.Todo, error) {
	return toPointers(r.Store.List()), nil
}

// Todo is the resolver for the todo field.
func (r *queryResolver) Todo(ctx context.Context, id string) (*todo.Todo, error) {
	t, err := r.Store.Get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SearchTodos is the resolver for the searchTodos field.
func (r *queryResolver) SearchTodos(ctx context.Context, query string, limit *int) ([]*todo.Todo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, todo.NewValidationError(todo.MsgInvalidQuery)
	}
	if r.Index == nil {
		return nil, ErrSearchDisabled
	}

	n := r.SearchLimit
	if limit != nil && *limit > 0 {
		n = *limit
	}

	ids, err := r.Index.Search(query, n)
	if errors.Is(err, search.ErrInvalidQuery) {
		return nil, todo.NewValidationError(todo.MsgInvalidQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	result := make([]todo.Todo, 0, len(ids))
	for _, id := range ids {
		t, err := r.Store.Get(id)
		if err != nil {
			// Deleted between search and lookup.
			continue
		}
		result = append(result, t)
	}
	return toPointers(result), nil
}

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
