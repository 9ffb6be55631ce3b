package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/fanshop/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[{"_id":"b"},{"_id":"a"}]}}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), Config{URL: srv.URL})
	require.NoError(t, err)
	return c, fake
}

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(buildQuery("guitar", 20, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": {"multi_match": {"query": "guitar", "fields": ["name^2", "description"], "fuzziness": "AUTO"}},
		"from": 20,
		"size": 10,
		"_source": ["id"]
	}`, string(b))
}

func TestClient_Search(t *testing.T) {
	t.Parallel()
	c, fake := newTestClient(t)

	total, ids, err := c.Search(context.Background(), "products", "guitar", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"b", "a"}, ids)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, fake.requests, "POST /products/_search")
}

func TestClient_PutAndRemove(t *testing.T) {
	t.Parallel()
	c, fake := newTestClient(t)

	item := &models.Item{ID: uuid.New(), Name: "mug", Description: "white", Price: 3}
	require.NoError(t, c.Put(context.Background(), "merch", item))
	require.NoError(t, c.Remove(context.Background(), "merch", item.ID.String()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, fake.requests, "PUT /merch/_doc/"+item.ID.String())
	assert.Contains(t, fake.requests, "DELETE /merch/_doc/"+item.ID.String())
}
