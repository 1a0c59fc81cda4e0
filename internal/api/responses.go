// Package api defines the JSON request and response types shared by the HTTP
// handlers. Every endpoint speaks an explicit record type; handlers never
// shape responses ad hoc.
package api

// ErrorResponse is the generic JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic JSON success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// FailureResponse is the error envelope for endpoints that carry an explicit
// success flag.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SearchRequest is the body of POST /api/search. Level and Service are the
// preferred field names; Status and PaymentType are accepted as aliases.
type SearchRequest struct {
	Query       string `json:"query"`
	Level       string `json:"level"`
	Status      string `json:"status"`
	Service     string `json:"service"`
	PaymentType string `json:"payment_type"`
	Country     string `json:"country"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Page        int    `json:"page"`
	Size        int    `json:"size"`
}

// SearchResult is one formatted search hit.
type SearchResult struct {
	ID              string  `json:"id"`
	Timestamp       string  `json:"timestamp"`
	TransactionID   string  `json:"transaction_id"`
	CustomerID      string  `json:"customer_id"`
	Amount          float64 `json:"amount"`
	PaymentType     string  `json:"payment_type"`
	Status          string  `json:"status"`
	Country         string  `json:"country"`
	ProductCategory string  `json:"product_category"`
	ErrorMessage    string  `json:"error_message"`
}

// QueryInfo echoes the effective search parameters back to the caller.
type QueryInfo struct {
	Query    string `json:"query"`
	Level    string `json:"level"`
	Service  string `json:"service"`
	Country  string `json:"country"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// SearchResponse is the body of a successful POST /api/search.
type SearchResponse struct {
	Success    bool           `json:"success"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int64          `json:"total_pages"`
	Results    []SearchResult `json:"results"`
	QueryInfo  QueryInfo      `json:"query_info"`
}

// HistoryResponse is the body of a successful GET /api/search/history.
type HistoryResponse struct {
	Success bool             `json:"success"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Skip    int              `json:"skip"`
	History []map[string]any `json:"history"`
}

// UploadResponse is the body of a successful POST /upload.
type UploadResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	Filename      string   `json:"filename"`
	Size          int64    `json:"size"`
	Type          string   `json:"type"`
	UploadDate    string   `json:"upload_date"`
	MongoDBStored bool     `json:"mongodb_stored"`
	FileID        string   `json:"file_id,omitempty"`
	Preview       []any    `json:"preview"`
	Headers       []string `json:"headers"`
}
