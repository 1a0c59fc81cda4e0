// Package adapters provides the search engine, history store and cache
// implementations for the search feature.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"logsearch_backend/internal/feature/search/domain/entity"
	"logsearch_backend/internal/feature/search/usecase"
	"logsearch_backend/internal/platform/elastic"
)

// DefaultIndex is the index pattern Logstash writes log records to.
const DefaultIndex = "logstash-*"

// esSearchEngine is the Elasticsearch implementation of usecase.SearchEngine.
type esSearchEngine struct {
	es    *elastic.Client
	index string
}

var _ usecase.SearchEngine = (*esSearchEngine)(nil)

// NewEsSearchEngine creates an esSearchEngine over the given connection
// manager. An empty index falls back to DefaultIndex.
func NewEsSearchEngine(es *elastic.Client, index string) *esSearchEngine {
	if index == "" {
		index = DefaultIndex
	}
	return &esSearchEngine{es: es, index: index}
}

// searchBody is the request body sent to the engine. Results are sorted by
// timestamp, newest first.
type searchBody struct {
	Query map[string]any   `json:"query"`
	From  int              `json:"from"`
	Size  int              `json:"size"`
	Sort  []map[string]any `json:"sort"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs one query body against the log index.
func (e *esSearchEngine) Search(ctx context.Context, query map[string]any, from, size int) (*entity.EngineResult, error) {
	es := e.es.Handle(ctx)
	if es == nil {
		return nil, usecase.ErrEngineUnavailable
	}

	body, err := json.Marshal(searchBody{
		Query: query,
		From:  from,
		Size:  size,
		Sort:  []map[string]any{{"@timestamp": map[string]any{"order": "desc"}}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(e.index),
		es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search failed with status %d: %s", res.StatusCode, msg)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result := &entity.EngineResult{Total: parsed.Hits.Total.Value}
	for _, h := range parsed.Hits.Hits {
		result.Hits = append(result.Hits, entity.EngineHit{ID: h.ID, Source: h.Source})
	}
	return result, nil
}
