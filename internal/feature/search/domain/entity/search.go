// Package entity defines the domain entities for the search feature.
package entity

import "time"

// Request is a normalized search request: free text, exact-match filters, an
// optional timestamp range and pagination.
type Request struct {
	Query    string
	Level    string // status filter
	Service  string // payment_type filter
	Country  string
	DateFrom string
	DateTo   string
	Page     int
	Size     int
}

// EngineHit is one raw hit returned by the search engine.
type EngineHit struct {
	ID     string
	Source map[string]any
}

// EngineResult is the raw outcome of one engine query.
type EngineResult struct {
	Total int64
	Hits  []EngineHit
}

// LogRecord is one formatted search hit as exposed to callers.
type LogRecord struct {
	ID              string
	Timestamp       string
	TransactionID   string
	CustomerID      string
	Amount          float64
	PaymentType     string
	Status          string
	Country         string
	ProductCategory string
	ErrorMessage    string
}

// ResultPage is a formatted, paginated search outcome.
type ResultPage struct {
	Total      int64
	Page       int
	Size       int
	TotalPages int64
	Results    []LogRecord
}

// HistoryFilters is the filter set recorded with a history entry.
type HistoryFilters struct {
	Level    string `bson:"level" json:"level"`
	Service  string `bson:"service" json:"service"`
	Country  string `bson:"country" json:"country"`
	DateFrom string `bson:"date_from" json:"date_from"`
	DateTo   string `bson:"date_to" json:"date_to"`
}

// HistoryEntry is one append-only search log row. Entries are written once
// per successful search and never mutated.
type HistoryEntry struct {
	Timestamp          time.Time      `bson:"timestamp" json:"timestamp"`
	Query              string         `bson:"query" json:"query"`
	Filters            HistoryFilters `bson:"filters" json:"filters"`
	ElasticsearchQuery map[string]any `bson:"elasticsearch_query" json:"elasticsearch_query"`
	ResultsCount       int64          `bson:"results_count" json:"results_count"`
	Page               int            `bson:"page" json:"page"`
	Size               int            `bson:"size" json:"size"`
	ExecutionTimeMS    int64          `bson:"execution_time_ms" json:"execution_time_ms"`
	IPAddress          string         `bson:"ip_address" json:"ip_address"`
	UserAgent          string         `bson:"user_agent" json:"user_agent"`
}
