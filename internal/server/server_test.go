package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hmans/todos/internal/config"
	"github.com/hmans/todos/internal/todo"
)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewFromConfig(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func postGraphQL(t *testing.T, h http.Handler, query string, variables map[string]any) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, GraphQLPath, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestGraphQLOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.Handler()

	resp := postGraphQL(t, h, `mutation { addTodo(title: "Buy milk") { id title isCompleted } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"addTodo":{"id":"1","title":"Buy milk","isCompleted":false}}`, string(resp.Data))

	resp = postGraphQL(t, h, `mutation($id: ID!) { markTodoCompleted(id: $id) { id isCompleted } }`, map[string]any{"id": "1"})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"markTodoCompleted":{"id":"1","isCompleted":true}}`, string(resp.Data))

	resp = postGraphQL(t, h, `{ todos { id title isCompleted } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"todos":[{"id":"1","title":"Buy milk","isCompleted":true}]}`, string(resp.Data))

	resp = postGraphQL(t, h, `mutation { deleteTodo(id: "7") { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, todo.MsgDeleteNotFound, resp.Errors[0].Message)
	assert.Equal(t, "null", string(resp.Data))
}

func TestGraphQLGet(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Store.Seed = []string{"seeded"} })

	req := httptest.NewRequest(http.MethodGet, GraphQLPath+"?query="+`%7B%20todos%20%7B%20title%20%7D%20%7D`, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"todos":[{"title":"seeded"}]}}`, rec.Body.String())
}

func TestSearchOverHTTP(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Store.Seed = []string{"Buy milk", "Walk the dog"}
	})

	resp := postGraphQL(t, s.Handler(), `{ searchTodos(query: "milk") { id title } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"searchTodos":[{"id":"1","title":"Buy milk"}]}`, string(resp.Data))
}

func TestSearchDisabled(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Search.Enabled = false })

	resp := postGraphQL(t, s.Handler(), `{ searchTodos(query: "milk") { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "search is disabled", resp.Errors[0].Message)
}

func TestIntrospectionSetting(t *testing.T) {
	query := `{ __schema { queryType { name } } }`

	on := newTestServer(t, nil)
	resp := postGraphQL(t, on.Handler(), query, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"__schema":{"queryType":{"name":"Query"}}}`, string(resp.Data))

	off := newTestServer(t, func(c *config.Config) { c.Server.Introspection = false })
	resp = postGraphQL(t, off.Handler(), query, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "introspection disabled", resp.Errors[0].Message)
}

func TestComplexityLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.ComplexityLimit = 2 })

	resp := postGraphQL(t, s.Handler(), `{ todos { id title isCompleted } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "complexity")
}

func TestHealth(t *testing.T) {
	t.Run("seeded todos are indexed", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) { c.Store.Seed = []string{"a", "b"} })
		h := s.Handler()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","todos":2,"indexed":2}`, rec.Body.String())

		resp := postGraphQL(t, h, `mutation { addTodo(title: "c") { id } }`, nil)
		require.Empty(t, resp.Errors)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.JSONEq(t, `{"status":"ok","todos":3,"indexed":3}`, rec.Body.String())
	})

	t.Run("search disabled", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) {
			c.Store.Seed = []string{"a", "b"}
			c.Search.Enabled = false
		})

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","todos":2}`, rec.Body.String())
	})
}

func TestSearchInvalidQueryOverHTTP(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Store.Seed = []string{"Buy milk"} })

	resp := postGraphQL(t, s.Handler(), `{ searchTodos(query: "\"unterminated") { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, todo.MsgInvalidQuery, resp.Errors[0].Message)
}

func TestPlayground(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		s := newTestServer(t, nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Todos GraphQL")
	})

	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) { c.Server.Playground = false })
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Store.Seed = []string{"a"} })
	h := s.Handler()

	postGraphQL(t, h, `{ todos { id } }`, nil)
	postGraphQL(t, h, `{ todo(id: "99") { id } }`, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `todos_graphql_operations_total{operation="query",status="ok"} 1`)
	assert.Contains(t, body, `todos_graphql_operations_total{operation="query",status="error"} 1`)
	assert.Contains(t, body, `todos_graphql_field_resolutions_total{field="todo",object="Query",status="error"} 1`)
	assert.Contains(t, body, `todos_http_requests_total{method="POST",path="/graphql",status="200"} 2`)
	assert.Contains(t, body, "todos_store_items 1")
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Metrics.Enabled = false })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	t.Run("any origin", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := httptest.NewRequest(http.MethodOptions, GraphQLPath, nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("restricted origin", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) { c.Server.CORSOrigins = []string{"http://localhost:3000"} })
		req := httptest.NewRequest(http.MethodOptions, GraphQLPath, nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestErrorPresenterLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	cfg := config.Default()
	s, err := NewFromConfig(cfg, logger)
	require.NoError(t, err)
	defer s.Close()

	postGraphQL(t, s.Handler(), `mutation { addTodo(title: "") { id } }`, nil)

	rejected := logs.FilterMessage("graphql request rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, todo.MsgInvalidTitle, rejected[0].ContextMap()["message"])
	assert.Equal(t, 1, logs.FilterMessage("http request").Len())
}

func TestNewFromConfig(t *testing.T) {
	t.Run("nanoid ids", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) {
			c.Store.IDStrategy = todo.StrategyNanoID
			c.Store.IDLength = 12
			c.Store.Seed = []string{"x"}
		})
		todos := s.Store().List()
		require.Len(t, todos, 1)
		assert.Len(t, todos[0].ID, 12)
	})

	t.Run("invalid seed", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Seed = []string{"ok", ""}
		_, err := NewFromConfig(cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), todo.MsgInvalidTitle)
	})

	t.Run("unknown id strategy", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.IDStrategy = "counter"
		_, err := NewFromConfig(cfg, nil)
		assert.Error(t, err)
	})
}

func TestServeGracefulShutdown(t *testing.T) {
	s := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Post(url+GraphQLPath, "application/json", strings.NewReader(`{"query":"{ todos { id } }"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `{"data":{"todos":[]}}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
