// Package usecase assembles the dashboard statistics from the search engine
// and the document store.
package usecase

import (
	"context"
	"log/slog"

	"logsearch_backend/internal/feature/dashboard/domain/entity"
)

// LogStatsProvider reads aggregate numbers from the log index.
type LogStatsProvider interface {
	TotalLogs(ctx context.Context) (int64, error)
	LogsToday(ctx context.Context) (int64, error)
	ErrorCount(ctx context.Context) (int64, error)
	Timeline(ctx context.Context) ([]entity.TimelineBucket, error)
}

// FileCounter reads the number of uploaded files on record.
type FileCounter interface {
	Count(ctx context.Context) (int64, error)
}

// dashboardUsecase collects the stats, degrading each number to zero when its
// backend is unreachable.
type dashboardUsecase struct {
	logs  LogStatsProvider
	files FileCounter
}

// NewDashboardUsecase creates a new instance of dashboardUsecase.
func NewDashboardUsecase(logs LogStatsProvider, files FileCounter) *dashboardUsecase {
	return &dashboardUsecase{logs: logs, files: files}
}

// Overview gathers all dashboard numbers. Partial failures are logged and the
// affected figures stay zero.
func (u *dashboardUsecase) Overview(ctx context.Context) entity.Stats {
	var stats entity.Stats

	if n, err := u.logs.TotalLogs(ctx); err == nil {
		stats.TotalLogs = n
	} else {
		slog.Warn("dashboard total logs unavailable", "error", err)
	}
	if n, err := u.logs.LogsToday(ctx); err == nil {
		stats.LogsToday = n
	} else {
		slog.Warn("dashboard daily logs unavailable", "error", err)
	}
	if n, err := u.logs.ErrorCount(ctx); err == nil {
		stats.ErrorCount = n
	} else {
		slog.Warn("dashboard error count unavailable", "error", err)
	}
	if buckets, err := u.logs.Timeline(ctx); err == nil {
		stats.Timeline = buckets
	} else {
		slog.Warn("dashboard timeline unavailable", "error", err)
	}
	if n, err := u.files.Count(ctx); err == nil {
		stats.FilesUploaded = n
	} else {
		slog.Warn("dashboard file count unavailable", "error", err)
	}

	return stats
}
