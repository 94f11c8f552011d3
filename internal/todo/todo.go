// Package todo holds the todo record and the in-memory store that owns all of them.
package todo

// Todo is a single todo item.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}
