// Package search provides full-text search over todo titles using Bleve.
package search

import (
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/hmans/todos/internal/todo"
)

// DefaultSearchLimit is the default maximum number of search results.
const DefaultSearchLimit = 100

// ErrInvalidQuery wraps query string syntax errors reported by Search.
var ErrInvalidQuery = errors.New("invalid search query")

// Index wraps a Bleve in-memory index for searching todos.
type Index struct {
	index bleve.Index
}

// todoDocument is the structure stored in the Bleve index.
type todoDocument struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewIndex creates a new in-memory Bleve index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	return &Index{index: idx}, nil
}

// buildIndexMapping creates the Bleve index mapping for todo documents.
func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "standard"

	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	todoMapping := bleve.NewDocumentMapping()
	todoMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	todoMapping.AddFieldMappingsAt("title", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = todoMapping
	indexMapping.DefaultAnalyzer = "standard"
	indexMapping.DefaultField = "title"
	indexMapping.IndexDynamic = false
	indexMapping.StoreDynamic = false

	// Titles are short; BM25 keeps repeated words from dominating.
	indexMapping.ScoringModel = "bm25"

	return indexMapping
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}

// Index adds or updates a todo in the search index.
func (idx *Index) Index(t todo.Todo) error {
	return idx.index.Index(t.ID, todoDocument{ID: t.ID, Title: t.Title})
}

// Remove deletes a todo from the search index.
func (idx *Index) Remove(id string) error {
	return idx.index.Delete(id)
}

// IndexAll indexes multiple todos in a single batch.
func (idx *Index) IndexAll(todos []todo.Todo) error {
	batch := idx.index.NewBatch()
	for _, t := range todos {
		if err := batch.Index(t.ID, todoDocument{ID: t.ID, Title: t.Title}); err != nil {
			return err
		}
	}
	return idx.index.Batch(batch)
}

// Count returns the number of indexed documents.
func (idx *Index) Count() (uint64, error) {
	return idx.index.DocCount()
}

// Search executes a query and returns matching todo IDs, best match first.
// The limit parameter controls the maximum number of results (0 uses DefaultSearchLimit).
func (idx *Index) Search(queryStr string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	// Query string syntax: terms, "phrases", wildcards (learn*), +required -excluded.
	query := bleve.NewQueryStringQuery(queryStr)
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"id"}

	result, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}

	return ids, nil
}
