package todo

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

type recordingIndexer struct {
	indexed []string
	removed []string
	batches [][]string
	fail    bool
}

func (r *recordingIndexer) Index(t Todo) error {
	if r.fail {
		return errors.New("index unavailable")
	}
	r.indexed = append(r.indexed, t.ID)
	return nil
}

func (r *recordingIndexer) Remove(id string) error {
	if r.fail {
		return errors.New("index unavailable")
	}
	r.removed = append(r.removed, id)
	return nil
}

func (r *recordingIndexer) IndexAll(todos []Todo) error {
	if r.fail {
		return errors.New("index unavailable")
	}
	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	r.batches = append(r.batches, ids)
	return nil
}

type fixedIDs struct {
	ids []string
}

func (f *fixedIDs) NextID() (string, error) {
	if len(f.ids) == 0 {
		return "", errors.New("exhausted")
	}
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id, nil
}

func mustAdd(t *testing.T, s *Store, title string) Todo {
	t.Helper()
	added, err := s.Add(title)
	if err != nil {
		t.Fatalf("Add(%q) error = %v", title, err)
	}
	return added
}

func TestStoreScenario(t *testing.T) {
	s := NewStore()

	added := mustAdd(t, s, "Learn GraphQL")
	want := Todo{ID: "1", Title: "Learn GraphQL", IsCompleted: false}
	if added != want {
		t.Errorf("Add() = %+v, want %+v", added, want)
	}

	list := s.List()
	if len(list) != 1 || list[0] != added {
		t.Fatalf("List() = %+v, want [%+v]", list, added)
	}

	completed, err := s.MarkCompleted("1")
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if completed.ID != "1" || !completed.IsCompleted {
		t.Errorf("MarkCompleted() = %+v, want id 1 completed", completed)
	}

	deleted, err := s.Delete("1")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	want.IsCompleted = true
	if deleted != want {
		t.Errorf("Delete() = %+v, want %+v", deleted, want)
	}

	_, err = s.Get("1")
	if err == nil || err.Error() != MsgNotFound {
		t.Errorf("Get() after delete error = %v, want %q", err, MsgNotFound)
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("List() after delete = %+v, want empty", got)
	}
}

func TestStoreAdd(t *testing.T) {
	t.Run("empty title", func(t *testing.T) {
		s := NewStore()
		_, err := s.Add("")
		if err == nil {
			t.Fatal("Add(\"\") expected error")
		}
		if err.Error() != "Please Enter a valid todo" {
			t.Errorf("Add(\"\") error = %q, want %q", err.Error(), "Please Enter a valid todo")
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Add(\"\") error %v is not ErrValidation", err)
		}
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})

	t.Run("new todos are incomplete with fresh ids", func(t *testing.T) {
		s := NewStore()
		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			got := mustAdd(t, s, fmt.Sprintf("todo %d", i))
			if got.IsCompleted {
				t.Errorf("Add() returned completed todo %+v", got)
			}
			if seen[got.ID] {
				t.Errorf("id %q reused", got.ID)
			}
			seen[got.ID] = true
		}
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := NewStore()
		mustAdd(t, s, "first")
		second := mustAdd(t, s, "second")

		if _, err := s.Delete("1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		third := mustAdd(t, s, "third")
		if third.ID != "3" {
			t.Errorf("third.ID = %q, want %q", third.ID, "3")
		}
		if third.ID == second.ID {
			t.Errorf("third reused id %q", third.ID)
		}
	})

	t.Run("insertion order", func(t *testing.T) {
		s := NewStore()
		for _, title := range []string{"a", "b", "c"} {
			mustAdd(t, s, title)
		}
		var titles []string
		for _, td := range s.List() {
			titles = append(titles, td.Title)
		}
		if want := []string{"a", "b", "c"}; !reflect.DeepEqual(titles, want) {
			t.Errorf("titles = %v, want %v", titles, want)
		}
	})

	t.Run("generator collision is retried", func(t *testing.T) {
		s := NewStore(WithIDGenerator(&fixedIDs{ids: []string{"x", "x", "y"}}))
		first := mustAdd(t, s, "one")
		second := mustAdd(t, s, "two")
		if first.ID != "x" || second.ID != "y" {
			t.Errorf("ids = %q, %q, want x, y", first.ID, second.ID)
		}
	})

	t.Run("generator failure leaves store untouched", func(t *testing.T) {
		s := NewStore(WithIDGenerator(&fixedIDs{}))
		_, err := s.Add("one")
		if err == nil {
			t.Fatal("Add() expected error from exhausted generator")
		}
		if KindOf(err) != Kind(0) {
			t.Errorf("KindOf() = %v, want unknown", KindOf(err))
		}
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})
}

func TestStoreNotFound(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "keep me")
	before := s.List()

	tests := []struct {
		name    string
		op      func(id string) (Todo, error)
		wantMsg string
	}{
		{"get", s.Get, "Todo item does not exist"},
		{"mark completed", s.MarkCompleted, "Todo does not exist"},
		{"delete", s.Delete, "Todo item does not exist for given id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, id := range []string{"-1", "", "2", "01"} {
				_, err := tt.op(id)
				if err == nil {
					t.Fatalf("%s(%q) expected error", tt.name, id)
				}
				if err.Error() != tt.wantMsg {
					t.Errorf("%s(%q) error = %q, want %q", tt.name, id, err.Error(), tt.wantMsg)
				}
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("%s(%q) error %v is not ErrNotFound", tt.name, id, err)
				}
				if KindOf(err) != KindNotFound {
					t.Errorf("KindOf() = %v, want %v", KindOf(err), KindNotFound)
				}
			}
			if got := s.List(); !reflect.DeepEqual(got, before) {
				t.Errorf("List() = %+v, want %+v", got, before)
			}
		})
	}
}

func TestStoreMarkCompletedIdempotent(t *testing.T) {
	s := NewStore()
	added := mustAdd(t, s, "twice")

	for i := 0; i < 2; i++ {
		got, err := s.MarkCompleted(added.ID)
		if err != nil {
			t.Fatalf("MarkCompleted() call %d error = %v", i+1, err)
		}
		if !got.IsCompleted || got.Title != "twice" {
			t.Errorf("MarkCompleted() call %d = %+v", i+1, got)
		}
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	added := mustAdd(t, s, "original")

	added.Title = "changed"
	list := s.List()
	list[0].IsCompleted = true

	got, err := s.Get(added.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "original" || got.IsCompleted {
		t.Errorf("Get() = %+v, store was mutated through a returned copy", got)
	}
}

func TestStoreIndexer(t *testing.T) {
	t.Run("mirrors adds and deletes", func(t *testing.T) {
		idx := &recordingIndexer{}
		s := NewStore(WithIndexer(idx))

		mustAdd(t, s, "a")
		mustAdd(t, s, "b")
		if _, err := s.Delete("1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Delete("missing"); err == nil {
			t.Fatal("Delete(missing) expected error")
		}

		if want := []string{"1", "2"}; !reflect.DeepEqual(idx.indexed, want) {
			t.Errorf("indexed = %v, want %v", idx.indexed, want)
		}
		if want := []string{"1"}; !reflect.DeepEqual(idx.removed, want) {
			t.Errorf("removed = %v, want %v", idx.removed, want)
		}
	})

	t.Run("indexer failure does not undo mutation", func(t *testing.T) {
		s := NewStore(WithIndexer(&recordingIndexer{fail: true}))
		added := mustAdd(t, s, "a")
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1", s.Len())
		}

		if _, err := s.Delete(added.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})
}

func TestStoreAttachIndexer(t *testing.T) {
	t.Run("batches existing todos then mirrors changes", func(t *testing.T) {
		s := NewStore()
		mustAdd(t, s, "a")
		mustAdd(t, s, "b")

		idx := &recordingIndexer{}
		if err := s.AttachIndexer(idx); err != nil {
			t.Fatalf("AttachIndexer() error = %v", err)
		}
		if want := [][]string{{"1", "2"}}; !reflect.DeepEqual(idx.batches, want) {
			t.Errorf("batches = %v, want %v", idx.batches, want)
		}
		if len(idx.indexed) != 0 {
			t.Errorf("indexed = %v, want no single adds during attach", idx.indexed)
		}

		mustAdd(t, s, "c")
		if want := []string{"3"}; !reflect.DeepEqual(idx.indexed, want) {
			t.Errorf("indexed after attach = %v, want %v", idx.indexed, want)
		}
	})

	t.Run("failed batch leaves store without indexer", func(t *testing.T) {
		s := NewStore()
		mustAdd(t, s, "a")

		idx := &recordingIndexer{fail: true}
		err := s.AttachIndexer(idx)
		if err == nil {
			t.Fatal("AttachIndexer() expected error")
		}
		if s.indexer != nil {
			t.Error("indexer attached despite failed batch")
		}
	})
}

func TestStoreConcurrentAdds(t *testing.T) {
	s := NewStore()
	const workers, perWorker = 8, 50

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := s.Add(fmt.Sprintf("worker %d item %d", w, i)); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Add() error = %v", err)
	}

	list := s.List()
	if len(list) != workers*perWorker {
		t.Fatalf("len(List()) = %d, want %d", len(list), workers*perWorker)
	}
	seen := make(map[string]bool, len(list))
	for _, td := range list {
		if seen[td.ID] {
			t.Errorf("duplicate id %q", td.ID)
		}
		seen[td.ID] = true
	}
}
