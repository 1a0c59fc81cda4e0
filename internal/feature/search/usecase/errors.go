package usecase

import "errors"

var (
	// ErrEngineUnavailable is returned when the search engine has no live
	// connection.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrHistoryUnavailable is returned when the history store has no live
	// connection.
	ErrHistoryUnavailable = errors.New("search history unavailable")
)
