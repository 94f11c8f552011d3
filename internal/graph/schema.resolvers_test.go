package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/hmans/todos/internal/search"
	"github.com/hmans/todos/internal/todo"
)

func setupTestResolver(t *testing.T) (*Resolver, *todo.Store) {
	t.Helper()
	store := todo.NewStore()
	return &Resolver{Store: store}, store
}

func setupSearchResolver(t *testing.T) (*Resolver, *todo.Store) {
	t.Helper()
	idx, err := search.NewIndex()
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	store := todo.NewStore(todo.WithIndexer(idx))
	return &Resolver{Store: store, Index: idx, SearchLimit: search.DefaultSearchLimit}, store
}

func createTestTodo(t *testing.T, store *todo.Store, title string) todo.Todo {
	t.Helper()
	td, err := store.Add(title)
	if err != nil {
		t.Fatalf("failed to create test todo: %v", err)
	}
	return td
}

func TestQueryTodos(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		got, err := resolver.Query().Todos(ctx)
		if err != nil {
			t.Fatalf("Todos() error = %v", err)
		}
		if got == nil {
			t.Fatal("Todos() returned nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("Todos() count = %d, want 0", len(got))
		}
	})

	createTestTodo(t, store, "first")
	createTestTodo(t, store, "second")

	t.Run("insertion order", func(t *testing.T) {
		got, err := resolver.Query().Todos(ctx)
		if err != nil {
			t.Fatalf("Todos() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Todos() count = %d, want 2", len(got))
		}
		if got[0].Title != "first" || got[1].Title != "second" {
			t.Errorf("Todos() titles = %q, %q; want first, second", got[0].Title, got[1].Title)
		}
	})
}

func TestQueryTodo(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	created := createTestTodo(t, store, "Buy milk")

	t.Run("existing id", func(t *testing.T) {
		got, err := resolver.Query().Todo(ctx, created.ID)
		if err != nil {
			t.Fatalf("Todo() error = %v", err)
		}
		if got.ID != created.ID || got.Title != "Buy milk" || got.IsCompleted {
			t.Errorf("Todo() = %+v, want %+v", *got, created)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := resolver.Query().Todo(ctx, "99")
		if err == nil {
			t.Fatalf("Todo() = %+v, want error", got)
		}
		if err.Error() != todo.MsgNotFound {
			t.Errorf("Todo() error = %q, want %q", err.Error(), todo.MsgNotFound)
		}
		if !errors.Is(err, todo.ErrNotFound) {
			t.Errorf("Todo() error kind = %v, want not found", todo.KindOf(err))
		}
	})
}

func TestMutationAddTodo(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	ctx := context.Background()

	t.Run("assigns sequential ids", func(t *testing.T) {
		for i, want := range []string{"1", "2", "3"} {
			got, err := resolver.Mutation().AddTodo(ctx, "todo")
			if err != nil {
				t.Fatalf("AddTodo() #%d error = %v", i, err)
			}
			if got.ID != want {
				t.Errorf("AddTodo() #%d id = %q, want %q", i, got.ID, want)
			}
			if got.IsCompleted {
				t.Errorf("AddTodo() #%d isCompleted = true, want false", i)
			}
		}
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := resolver.Mutation().AddTodo(ctx, "")
		if err == nil {
			t.Fatal("AddTodo(\"\") error = nil, want validation error")
		}
		if err.Error() != todo.MsgInvalidTitle {
			t.Errorf("AddTodo(\"\") error = %q, want %q", err.Error(), todo.MsgInvalidTitle)
		}
		if todo.KindOf(err) != todo.KindValidation {
			t.Errorf("AddTodo(\"\") kind = %v, want validation", todo.KindOf(err))
		}
	})

	t.Run("whitespace title is accepted", func(t *testing.T) {
		got, err := resolver.Mutation().AddTodo(ctx, "   ")
		if err != nil {
			t.Fatalf("AddTodo() error = %v", err)
		}
		if got.Title != "   " {
			t.Errorf("AddTodo() title = %q, want %q", got.Title, "   ")
		}
	})
}

func TestMutationMarkTodoCompleted(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	created := createTestTodo(t, store, "Walk dog")

	got, err := resolver.Mutation().MarkTodoCompleted(ctx, created.ID)
	if err != nil {
		t.Fatalf("MarkTodoCompleted() error = %v", err)
	}
	if !got.IsCompleted {
		t.Error("MarkTodoCompleted() isCompleted = false, want true")
	}

	stored, _ := store.Get(created.ID)
	if !stored.IsCompleted {
		t.Error("stored todo isCompleted = false, want true")
	}

	// Completing twice is not an error.
	if _, err := resolver.Mutation().MarkTodoCompleted(ctx, created.ID); err != nil {
		t.Errorf("second MarkTodoCompleted() error = %v", err)
	}

	_, err = resolver.Mutation().MarkTodoCompleted(ctx, "42")
	if err == nil || err.Error() != todo.MsgCompleteNotFound {
		t.Errorf("MarkTodoCompleted(unknown) error = %v, want %q", err, todo.MsgCompleteNotFound)
	}
}

func TestMutationDeleteTodo(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	first := createTestTodo(t, store, "first")
	createTestTodo(t, store, "second")

	got, err := resolver.Mutation().DeleteTodo(ctx, first.ID)
	if err != nil {
		t.Fatalf("DeleteTodo() error = %v", err)
	}
	if got.ID != first.ID || got.Title != "first" {
		t.Errorf("DeleteTodo() = %+v, want %+v", *got, first)
	}
	if store.Len() != 1 {
		t.Errorf("store length = %d, want 1", store.Len())
	}

	_, err = resolver.Mutation().DeleteTodo(ctx, first.ID)
	if err == nil || err.Error() != todo.MsgDeleteNotFound {
		t.Errorf("DeleteTodo(deleted) error = %v, want %q", err, todo.MsgDeleteNotFound)
	}

	// Ids are never reused after a delete.
	next, err := resolver.Mutation().AddTodo(ctx, "third")
	if err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}
	if next.ID != "3" {
		t.Errorf("AddTodo() after delete id = %q, want %q", next.ID, "3")
	}
}

func TestQuerySearchTodos(t *testing.T) {
	resolver, store := setupSearchResolver(t)
	ctx := context.Background()

	milk := createTestTodo(t, store, "Buy milk")
	createTestTodo(t, store, "Walk the dog")
	bread := createTestTodo(t, store, "Buy bread")

	t.Run("matches titles", func(t *testing.T) {
		got, err := resolver.Query().SearchTodos(ctx, "buy", nil)
		if err != nil {
			t.Fatalf("SearchTodos() error = %v", err)
		}
		ids := map[string]bool{}
		for _, td := range got {
			ids[td.ID] = true
		}
		if len(got) != 2 || !ids[milk.ID] || !ids[bread.ID] {
			t.Errorf("SearchTodos(buy) = %v, want ids %s and %s", ids, milk.ID, bread.ID)
		}
	})

	t.Run("limit", func(t *testing.T) {
		limit := 1
		got, err := resolver.Query().SearchTodos(ctx, "buy", &limit)
		if err != nil {
			t.Fatalf("SearchTodos() error = %v", err)
		}
		if len(got) != 1 {
			t.Errorf("SearchTodos(limit 1) count = %d, want 1", len(got))
		}
	})

	t.Run("deleted todos drop out", func(t *testing.T) {
		if _, err := store.Delete(milk.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		got, err := resolver.Query().SearchTodos(ctx, "milk", nil)
		if err != nil {
			t.Fatalf("SearchTodos() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("SearchTodos(milk) count = %d, want 0", len(got))
		}
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := resolver.Query().SearchTodos(ctx, "  ", nil)
		if err == nil || err.Error() != todo.MsgInvalidQuery {
			t.Errorf("SearchTodos(empty) error = %v, want %q", err, todo.MsgInvalidQuery)
		}
	})

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := resolver.Query().SearchTodos(ctx, `"unterminated`, nil)
		if err == nil || err.Error() != todo.MsgInvalidQuery {
			t.Errorf("SearchTodos(unterminated) error = %v, want %q", err, todo.MsgInvalidQuery)
		}
		if todo.KindOf(err) != todo.KindValidation {
			t.Errorf("SearchTodos(unterminated) kind = %v, want validation", todo.KindOf(err))
		}
	})
}

func TestQuerySearchTodosDisabled(t *testing.T) {
	resolver, _ := setupTestResolver(t)

	_, err := resolver.Query().SearchTodos(context.Background(), "milk", nil)
	if !errors.Is(err, ErrSearchDisabled) {
		t.Errorf("SearchTodos() error = %v, want %v", err, ErrSearchDisabled)
	}
}
