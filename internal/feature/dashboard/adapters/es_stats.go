// Package adapters provides the log-index statistics reader for the
// dashboard feature.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"logsearch_backend/internal/feature/dashboard/domain/entity"
	"logsearch_backend/internal/feature/dashboard/usecase"
	"logsearch_backend/internal/platform/elastic"
)

// DefaultIndex is the index pattern the dashboard aggregates over.
const DefaultIndex = "logstash-*"

// ErrEngineUnavailable is returned when the search engine has no live
// connection.
var ErrEngineUnavailable = errors.New("search engine unavailable")

// esStats is the Elasticsearch implementation of usecase.LogStatsProvider.
type esStats struct {
	es    *elastic.Client
	index string
}

var _ usecase.LogStatsProvider = (*esStats)(nil)

// NewEsStats creates an esStats over the given connection manager. An empty
// index falls back to DefaultIndex.
func NewEsStats(es *elastic.Client, index string) *esStats {
	if index == "" {
		index = DefaultIndex
	}
	return &esStats{es: es, index: index}
}

// TotalLogs counts every document in the log index.
func (s *esStats) TotalLogs(ctx context.Context) (int64, error) {
	return s.count(ctx, nil)
}

// LogsToday counts documents stamped since the start of the current day.
func (s *esStats) LogsToday(ctx context.Context) (int64, error) {
	return s.count(ctx, map[string]any{
		"range": map[string]any{
			"@timestamp": map[string]any{"gte": "now/d"},
		},
	})
}

// ErrorCount counts failed transactions: either a failed status or a present
// error message.
func (s *esStats) ErrorCount(ctx context.Context) (int64, error) {
	return s.count(ctx, map[string]any{
		"bool": map[string]any{
			"should": []any{
				map[string]any{"term": map[string]any{"status": "failed"}},
				map[string]any{"exists": map[string]any{"field": "error_message"}},
			},
			"minimum_should_match": 1,
		},
	})
}

// Timeline buckets the last 24 hours of logs into hourly counts.
func (s *esStats) Timeline(ctx context.Context) ([]entity.TimelineBucket, error) {
	es := s.es.Handle(ctx)
	if es == nil {
		return nil, ErrEngineUnavailable
	}

	// min_doc_count 0 plus extended bounds keeps empty hours in the
	// histogram; without them quiet hours vanish from the chart.
	body, err := json.Marshal(map[string]any{
		"size": 0,
		"query": map[string]any{
			"range": map[string]any{
				"@timestamp": map[string]any{"gte": "now-24h/h"},
			},
		},
		"aggs": map[string]any{
			"per_hour": map[string]any{
				"date_histogram": map[string]any{
					"field":          "@timestamp",
					"fixed_interval": "1h",
					"min_doc_count":  0,
					"extended_bounds": map[string]any{
						"min": "now-24h/h",
						"max": "now/h",
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode timeline body: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(s.index),
		es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("timeline request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("timeline failed with status %d: %s", res.StatusCode, msg)
	}

	var parsed struct {
		Aggregations struct {
			PerHour struct {
				Buckets []struct {
					KeyAsString string `json:"key_as_string"`
					DocCount    int64  `json:"doc_count"`
				} `json:"buckets"`
			} `json:"per_hour"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode timeline response: %w", err)
	}

	buckets := make([]entity.TimelineBucket, 0, len(parsed.Aggregations.PerHour.Buckets))
	for _, b := range parsed.Aggregations.PerHour.Buckets {
		buckets = append(buckets, entity.TimelineBucket{Time: b.KeyAsString, Count: b.DocCount})
	}
	return buckets, nil
}

// count runs one _count request, optionally scoped by a query.
func (s *esStats) count(ctx context.Context, query map[string]any) (int64, error) {
	es := s.es.Handle(ctx)
	if es == nil {
		return 0, ErrEngineUnavailable
	}

	args := []func(*esapi.CountRequest){
		es.Count.WithContext(ctx),
		es.Count.WithIndex(s.index),
	}
	if query != nil {
		raw, err := json.Marshal(map[string]any{"query": query})
		if err != nil {
			return 0, fmt.Errorf("encode count body: %w", err)
		}
		args = append(args, es.Count.WithBody(bytes.NewReader(raw)))
	}

	res, err := es.Count(args...)
	if err != nil {
		return 0, fmt.Errorf("count request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, fmt.Errorf("count failed with status %d: %s", res.StatusCode, msg)
	}

	var parsed struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return parsed.Count, nil
}
