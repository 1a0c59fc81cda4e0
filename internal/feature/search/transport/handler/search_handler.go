// Package handler provides the HTTP handlers for the search feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"logsearch_backend/internal/api"
	"logsearch_backend/internal/feature/search/domain/entity"
	"logsearch_backend/internal/feature/search/usecase"
)

// SearchUsecase defines the search operations used by the handler.
type SearchUsecase interface {
	Search(ctx context.Context, req entity.Request, meta usecase.RequestMeta) (*entity.ResultPage, error)
	History(ctx context.Context, limit, skip int) ([]map[string]any, int64, error)
}

// SearchHandler serves the search page, the search API and the history API.
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Page renders the search page.
func (h *SearchHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "search.html", gin.H{})
}

// Search handles POST /api/search. The filter aliases status/payment_type are
// folded into level/service before querying. An unreachable engine yields 503.
func (h *SearchHandler) Search(c *gin.Context) {
	var body api.SearchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, api.FailureResponse{Success: false, Error: "invalid request body"})
		return
	}

	req := entity.Request{
		Query:    body.Query,
		Level:    firstNonEmpty(body.Level, body.Status),
		Service:  firstNonEmpty(body.Service, body.PaymentType),
		Country:  body.Country,
		DateFrom: body.DateFrom,
		DateTo:   body.DateTo,
		Page:     body.Page,
		Size:     body.Size,
	}
	meta := usecase.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	page, err := h.uc.Search(c.Request.Context(), req, meta)
	if err != nil {
		if errors.Is(err, usecase.ErrEngineUnavailable) {
			c.JSON(http.StatusServiceUnavailable, api.FailureResponse{Success: false, Error: "Elasticsearch unavailable"})
			return
		}
		slog.Error("search failed", "query", req.Query, "error", err)
		c.JSON(http.StatusInternalServerError, api.FailureResponse{Success: false, Error: "search failed"})
		return
	}

	results := make([]api.SearchResult, 0, len(page.Results))
	for _, r := range page.Results {
		results = append(results, api.SearchResult{
			ID:              r.ID,
			Timestamp:       r.Timestamp,
			TransactionID:   r.TransactionID,
			CustomerID:      r.CustomerID,
			Amount:          r.Amount,
			PaymentType:     r.PaymentType,
			Status:          r.Status,
			Country:         r.Country,
			ProductCategory: r.ProductCategory,
			ErrorMessage:    r.ErrorMessage,
		})
	}

	c.JSON(http.StatusOK, api.SearchResponse{
		Success:    true,
		Total:      page.Total,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages,
		Results:    results,
		QueryInfo: api.QueryInfo{
			Query:    req.Query,
			Level:    req.Level,
			Service:  req.Service,
			Country:  req.Country,
			DateFrom: req.DateFrom,
			DateTo:   req.DateTo,
		},
	})
}

// History handles GET /api/search/history with optional limit and skip query
// parameters.
func (h *SearchHandler) History(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	skip := intQuery(c, "skip", 0)

	entries, total, err := h.uc.History(c.Request.Context(), limit, skip)
	if err != nil {
		if errors.Is(err, usecase.ErrHistoryUnavailable) {
			c.JSON(http.StatusServiceUnavailable, api.FailureResponse{Success: false, Error: "MongoDB unavailable"})
			return
		}
		slog.Error("history lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.FailureResponse{Success: false, Error: "failed to load search history"})
		return
	}

	c.JSON(http.StatusOK, api.HistoryResponse{
		Success: true,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		History: entries,
	})
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
