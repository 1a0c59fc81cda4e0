package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsearch_backend/internal/config"
	"logsearch_backend/internal/feature/search/usecase"
	"logsearch_backend/internal/platform/elastic"
)

// fakeEngine runs an HTTP stub that answers pings and serves searchHandler
// for _search requests.
func fakeEngine(t *testing.T, searchHandler http.HandlerFunc) *elastic.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		searchHandler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.FromEnv()
	cfg.ElasticsearchURL = srv.URL
	client := elastic.NewClient(cfg)
	require.True(t, client.Connect(context.Background()))
	return client
}

func TestEsSearch_SendsPaginationAndSort(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := fakeEngine(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":0},"hits":[]}}`))
	})

	engine := NewEsSearchEngine(client, "")
	_, err := engine.Search(context.Background(), map[string]any{"match_all": map[string]any{}}, 50, 50)

	require.NoError(t, err)
	assert.Equal(t, "/logstash-*/_search", gotPath)
	assert.Equal(t, float64(50), gotBody["from"])
	assert.Equal(t, float64(50), gotBody["size"])

	sort := gotBody["sort"].([]any)[0].(map[string]any)["@timestamp"].(map[string]any)
	assert.Equal(t, "desc", sort["order"])
}

func TestEsSearch_DecodesHits(t *testing.T) {
	client := fakeEngine(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_id": "a", "_source": {"status": "failed"}},
					{"_id": "b", "_source": {"status": "completed"}}
				]
			}
		}`))
	})

	engine := NewEsSearchEngine(client, "payments")
	res, err := engine.Search(context.Background(), map[string]any{"match_all": map[string]any{}}, 0, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	require.Len(t, res.Hits, 2)
	assert.Equal(t, "a", res.Hits[0].ID)
	assert.Equal(t, "failed", res.Hits[0].Source["status"])
}

func TestEsSearch_ErrorStatus(t *testing.T) {
	client := fakeEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"reason":"bad query"}}`))
	})

	engine := NewEsSearchEngine(client, "logs")
	_, err := engine.Search(context.Background(), map[string]any{}, 0, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestEsSearch_UnreachableEngine(t *testing.T) {
	cfg := config.FromEnv()
	cfg.ElasticsearchURL = "http://127.0.0.1:1"
	client := elastic.NewClient(cfg)

	engine := NewEsSearchEngine(client, "logs")
	_, err := engine.Search(context.Background(), map[string]any{}, 0, 10)

	assert.ErrorIs(t, err, usecase.ErrEngineUnavailable)
}
