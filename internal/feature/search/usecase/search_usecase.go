// Package usecase implements the search business logic: query building,
// result formatting and search history bookkeeping.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"logsearch_backend/internal/feature/search/domain/entity"
)

// SearchEngine abstracts the full-text index.
type SearchEngine interface {
	// Search runs one query body with explicit offset and size.
	Search(ctx context.Context, query map[string]any, from, size int) (*entity.EngineResult, error)
}

// HistoryRepository abstracts the append-only search log.
type HistoryRepository interface {
	Append(ctx context.Context, e *entity.HistoryEntry) error
	List(ctx context.Context, limit, skip int) ([]map[string]any, error)
	Count(ctx context.Context) (int64, error)
}

// RequestMeta carries per-request client details recorded with each search.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// searchUsecase orchestrates a search round trip against the engine and logs
// it to the history store.
type searchUsecase struct {
	engine  SearchEngine
	history HistoryRepository
}

// NewSearchUsecase creates a new instance of searchUsecase.
func NewSearchUsecase(engine SearchEngine, history HistoryRepository) *searchUsecase {
	return &searchUsecase{engine: engine, history: history}
}

// Search runs one paginated query. Pagination is clamped before the engine
// call, a successful call appends exactly one history entry, and a history
// write failure is logged without affecting the response.
func (u *searchUsecase) Search(ctx context.Context, req entity.Request, meta RequestMeta) (*entity.ResultPage, error) {
	req.Page = ClampPage(req.Page)
	req.Size = ClampSize(req.Size)

	query := BuildQuery(req)
	start := time.Now()

	res, err := u.engine.Search(ctx, query, Offset(req.Page, req.Size), req.Size)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	records := make([]entity.LogRecord, 0, len(res.Hits))
	for _, hit := range res.Hits {
		records = append(records, FormatHit(hit))
	}

	entry := &entity.HistoryEntry{
		Timestamp: time.Now().UTC(),
		Query:     req.Query,
		Filters: entity.HistoryFilters{
			Level:    req.Level,
			Service:  req.Service,
			Country:  req.Country,
			DateFrom: req.DateFrom,
			DateTo:   req.DateTo,
		},
		ElasticsearchQuery: query,
		ResultsCount:       res.Total,
		Page:               req.Page,
		Size:               req.Size,
		ExecutionTimeMS:    elapsed.Milliseconds(),
		IPAddress:          meta.IPAddress,
		UserAgent:          meta.UserAgent,
	}
	if err := u.history.Append(ctx, entry); err != nil {
		slog.Warn("search history not recorded", "query", req.Query, "error", err)
	}

	return &entity.ResultPage{
		Total:      res.Total,
		Page:       req.Page,
		Size:       req.Size,
		TotalPages: TotalPages(res.Total, req.Size),
		Results:    records,
	}, nil
}

// History returns past searches, newest first, along with the total count.
// A non-positive limit falls back to 50 and a negative skip to 0.
func (u *searchUsecase) History(ctx context.Context, limit, skip int) ([]map[string]any, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	entries, err := u.history.List(ctx, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.history.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
