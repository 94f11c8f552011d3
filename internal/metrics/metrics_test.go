package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation(t *testing.T) {
	m := New()

	m.RecordOperation("query", StatusOK, 10*time.Millisecond)
	m.RecordOperation("query", StatusOK, 20*time.Millisecond)
	m.RecordOperation("mutation", StatusError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("query", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("mutation", StatusError)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.OperationDuration))
}

func TestRecordHTTPRequest(t *testing.T) {
	m := New()

	m.RecordHTTPRequest("POST", "/graphql", "200")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/graphql", "200")))
}

func TestObserveStore(t *testing.T) {
	m := New()
	n := 3
	m.ObserveStore(func() int { return n })

	expected := `
# HELP todos_store_items Number of todos currently stored
# TYPE todos_store_items gauge
todos_store_items 3
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "todos_store_items"))

	n = 5
	expected = strings.Replace(expected, "items 3", "items 5", 1)
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "todos_store_items"))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("GET", "/healthz", "200")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `todos_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordHTTPRequest("GET", "/", "200")

	assert.Equal(t, 1, testutil.CollectAndCount(a.HTTPRequestsTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(b.HTTPRequestsTotal))
}
