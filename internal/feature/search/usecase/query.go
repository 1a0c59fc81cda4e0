package usecase

import (
	"math"
	"strconv"

	"logsearch_backend/internal/feature/search/domain/entity"
)

const (
	// DefaultPageSize is used when a request omits or zeroes the size.
	DefaultPageSize = 50
	// MaxPageSize caps the page size of a single search.
	MaxPageSize = 1000
)

// ClampPage normalizes a requested page number to at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampSize normalizes a requested page size into [1, MaxPageSize], falling
// back to DefaultPageSize when the size is missing or non-positive.
func ClampSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Offset converts a clamped page/size pair into a result offset.
func Offset(page, size int) int {
	return (page - 1) * size
}

// TotalPages computes the page count for a total hit count.
func TotalPages(total int64, size int) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(size)))
}

// BuildQuery translates a request into the engine query body. Free text
// becomes a multi_match over all fields, exact filters become term clauses
// and the date bounds become a range on @timestamp. An empty request yields
// match_all.
func BuildQuery(req entity.Request) map[string]any {
	var must []any

	if req.Query != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":    req.Query,
				"fields":   []string{"*"},
				"type":     "best_fields",
				"operator": "or",
			},
		})
	}
	if req.Level != "" {
		must = append(must, termClause("status", req.Level))
	}
	if req.Service != "" {
		must = append(must, termClause("payment_type", req.Service))
	}
	if req.Country != "" {
		must = append(must, termClause("country", req.Country))
	}
	if req.DateFrom != "" || req.DateTo != "" {
		bounds := map[string]any{}
		if req.DateFrom != "" {
			bounds["gte"] = req.DateFrom
		}
		if req.DateTo != "" {
			bounds["lte"] = req.DateTo
		}
		must = append(must, map[string]any{
			"range": map[string]any{"@timestamp": bounds},
		})
	}

	if len(must) == 0 {
		return map[string]any{"match_all": map[string]any{}}
	}
	return map[string]any{"bool": map[string]any{"must": must}}
}

func termClause(field, value string) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

// FormatHit flattens one engine hit into a log record. Missing fields come
// back empty and a non-numeric amount degrades to 0.
func FormatHit(hit entity.EngineHit) entity.LogRecord {
	src := hit.Source
	return entity.LogRecord{
		ID:              hit.ID,
		Timestamp:       stringField(src, "@timestamp"),
		TransactionID:   stringField(src, "transaction_id"),
		CustomerID:      stringField(src, "customer_id"),
		Amount:          amountField(src, "amount"),
		PaymentType:     stringField(src, "payment_type"),
		Status:          stringField(src, "status"),
		Country:         stringField(src, "country"),
		ProductCategory: stringField(src, "product_category"),
		ErrorMessage:    stringField(src, "error_message"),
	}
}

func stringField(src map[string]any, key string) string {
	if s, ok := src[key].(string); ok {
		return s
	}
	return ""
}

func amountField(src map[string]any, key string) float64 {
	switch v := src[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
