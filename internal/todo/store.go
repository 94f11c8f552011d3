package todo

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// maxIDAttempts bounds retries when a random generator collides with a live id.
const maxIDAttempts = 5

// Indexer is notified after todos are added or removed.
type Indexer interface {
	Index(t Todo) error
	Remove(id string) error
}

// BatchIndexer is an Indexer that can also take many todos at once.
type BatchIndexer interface {
	Indexer
	IndexAll(todos []Todo) error
}

// Store is a thread-safe, ordered, in-memory collection of todos.
// Methods return copies; callers never hold references into the store.
type Store struct {
	mu    sync.RWMutex
	todos []Todo

	ids     IDGenerator
	indexer Indexer
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the generator used for new ids.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithIndexer registers an Indexer that mirrors adds and deletes.
func WithIndexer(idx Indexer) Option {
	return func(s *Store) { s.indexer = idx }
}

// WithLogger sets the logger used to report indexer failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		todos:  []Todo{},
		ids:    &Sequence{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AttachIndexer indexes every todo currently held in one batch and then
// mirrors later adds and deletes into idx. No mutation can land between the
// batch and the switch-over.
func (s *Store) AttachIndexer(idx BatchIndexer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := idx.IndexAll(s.todos); err != nil {
		return fmt.Errorf("indexing %d todos: %w", len(s.todos), err)
	}
	s.indexer = idx
	return nil
}

// List returns all todos in insertion order.
func (s *Store) List() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Todo, len(s.todos))
	copy(result, s.todos)
	return result
}

// Len returns the number of todos currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}

// Get returns the todo with the given id.
func (s *Store) Get(id string) (Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, notFoundError(MsgNotFound)
	}
	return s.todos[i], nil
}

// Add appends a new, incomplete todo with a fresh id.
func (s *Store) Add(title string) (Todo, error) {
	if title == "" {
		return Todo{}, validationError(MsgInvalidTitle)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID()
	if err != nil {
		return Todo{}, err
	}

	t := Todo{ID: id, Title: title, IsCompleted: false}
	s.todos = append(s.todos, t)

	if s.indexer != nil {
		if err := s.indexer.Index(t); err != nil {
			s.logger.Warn("indexing todo failed", zap.String("id", t.ID), zap.Error(err))
		}
	}

	return t, nil
}

// MarkCompleted sets IsCompleted on the todo with the given id and returns it.
// Completing an already completed todo succeeds.
func (s *Store) MarkCompleted(id string) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, notFoundError(MsgCompleteNotFound)
	}
	s.todos[i].IsCompleted = true
	return s.todos[i], nil
}

// Delete removes the todo with the given id and returns it as it was.
func (s *Store) Delete(id string) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, notFoundError(MsgDeleteNotFound)
	}

	removed := s.todos[i]
	s.todos = append(s.todos[:i], s.todos[i+1:]...)

	if s.indexer != nil {
		if err := s.indexer.Remove(removed.ID); err != nil {
			s.logger.Warn("removing todo from index failed", zap.String("id", removed.ID), zap.Error(err))
		}
	}

	return removed, nil
}

// indexOf returns the position of the first todo with id, or -1 (must be called with lock held).
func (s *Store) indexOf(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID asks the generator for an id not currently in use (must be called with lock held).
func (s *Store) nextID() (string, error) {
	var id string
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		var err error
		id, err = s.ids.NextID()
		if err != nil {
			return "", err
		}
		if s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("no unique id after %d attempts (last %q)", maxIDAttempts, id)
}
