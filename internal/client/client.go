// Package client talks to a running todos server over GraphQL.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/hmans/todos/internal/todo"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Response is a GraphQL-over-HTTP response body.
type Response struct {
	Data       json.RawMessage `json:"data"`
	Errors     gqlerror.List   `json:"errors,omitempty"`
	Extensions map[string]any  `json:"extensions,omitempty"`
}

// Client sends GraphQL requests to a single endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a client for endpoint, e.g. http://localhost:4103/graphql.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Raw sends req and returns the decoded response, including any GraphQL errors.
// An error is returned only for transport failures.
func (c *Client) Raw(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("contacting %s: %w", c.endpoint, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("server returned %s", httpResp.Status)
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

// Do sends a request and decodes data into out. GraphQL errors are returned as gqlerror.List.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	resp, err := c.Raw(ctx, Request{Query: query, Variables: variables})
	if err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		return resp.Errors
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}

// Message returns the first GraphQL error message in err, or err.Error().
func Message(err error) string {
	var list gqlerror.List
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Message
	}
	return err.Error()
}

const todoFields = `id title isCompleted`

// List returns all todos.
func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	var data struct {
		Todos []todo.Todo `json:"todos"`
	}
	if err := c.Do(ctx, `query { todos { `+todoFields+` } }`, nil, &data); err != nil {
		return nil, err
	}
	return data.Todos, nil
}

// Get returns the todo with the given id.
func (c *Client) Get(ctx context.Context, id string) (*todo.Todo, error) {
	var data struct {
		Todo *todo.Todo `json:"todo"`
	}
	err := c.Do(ctx, `query($id: ID!) { todo(id: $id) { `+todoFields+` } }`, map[string]any{"id": id}, &data)
	if err != nil {
		return nil, err
	}
	return data.Todo, nil
}

// Add creates a todo.
func (c *Client) Add(ctx context.Context, title string) (*todo.Todo, error) {
	var data struct {
		AddTodo *todo.Todo `json:"addTodo"`
	}
	err := c.Do(ctx, `mutation($title: String!) { addTodo(title: $title) { `+todoFields+` } }`, map[string]any{"title": title}, &data)
	if err != nil {
		return nil, err
	}
	return data.AddTodo, nil
}

// Complete marks a todo as completed.
func (c *Client) Complete(ctx context.Context, id string) (*todo.Todo, error) {
	var data struct {
		MarkTodoCompleted *todo.Todo `json:"markTodoCompleted"`
	}
	err := c.Do(ctx, `mutation($id: ID!) { markTodoCompleted(id: $id) { `+todoFields+` } }`, map[string]any{"id": id}, &data)
	if err != nil {
		return nil, err
	}
	return data.MarkTodoCompleted, nil
}

// Delete removes a todo and returns it as it was.
func (c *Client) Delete(ctx context.Context, id string) (*todo.Todo, error) {
	var data struct {
		DeleteTodo *todo.Todo `json:"deleteTodo"`
	}
	err := c.Do(ctx, `mutation($id: ID!) { deleteTodo(id: $id) { `+todoFields+` } }`, map[string]any{"id": id}, &data)
	if err != nil {
		return nil, err
	}
	return data.DeleteTodo, nil
}

// Search returns todos whose titles match query. A limit of 0 uses the server default.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]todo.Todo, error) {
	vars := map[string]any{"query": query}
	if limit > 0 {
		vars["limit"] = limit
	}
	var data struct {
		SearchTodos []todo.Todo `json:"searchTodos"`
	}
	err := c.Do(ctx, `query($query: String!, $limit: Int) { searchTodos(query: $query, limit: $limit) { `+todoFields+` } }`, vars, &data)
	if err != nil {
		return nil, err
	}
	return data.SearchTodos, nil
}
