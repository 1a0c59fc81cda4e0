package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"logsearch_backend/internal/feature/dashboard/domain/entity"
)

// mockLogStats is a mock implementation of LogStatsProvider.
type mockLogStats struct {
	totalFn    func(ctx context.Context) (int64, error)
	todayFn    func(ctx context.Context) (int64, error)
	errorsFn   func(ctx context.Context) (int64, error)
	timelineFn func(ctx context.Context) ([]entity.TimelineBucket, error)
}

func (m *mockLogStats) TotalLogs(ctx context.Context) (int64, error) {
	if m.totalFn != nil {
		return m.totalFn(ctx)
	}
	return 0, nil
}

func (m *mockLogStats) LogsToday(ctx context.Context) (int64, error) {
	if m.todayFn != nil {
		return m.todayFn(ctx)
	}
	return 0, nil
}

func (m *mockLogStats) ErrorCount(ctx context.Context) (int64, error) {
	if m.errorsFn != nil {
		return m.errorsFn(ctx)
	}
	return 0, nil
}

func (m *mockLogStats) Timeline(ctx context.Context) ([]entity.TimelineBucket, error) {
	if m.timelineFn != nil {
		return m.timelineFn(ctx)
	}
	return nil, nil
}

// mockFileCounter is a mock implementation of FileCounter.
type mockFileCounter struct {
	countFn func(ctx context.Context) (int64, error)
}

func (m *mockFileCounter) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func TestOverview_AllBackendsUp(t *testing.T) {
	logs := &mockLogStats{
		totalFn:  func(ctx context.Context) (int64, error) { return 1000, nil },
		todayFn:  func(ctx context.Context) (int64, error) { return 42, nil },
		errorsFn: func(ctx context.Context) (int64, error) { return 7, nil },
		timelineFn: func(ctx context.Context) ([]entity.TimelineBucket, error) {
			return []entity.TimelineBucket{{Time: "2026-08-31T10:00:00Z", Count: 5}}, nil
		},
	}
	files := &mockFileCounter{countFn: func(ctx context.Context) (int64, error) { return 3, nil }}

	stats := NewDashboardUsecase(logs, files).Overview(context.Background())

	assert.Equal(t, int64(1000), stats.TotalLogs)
	assert.Equal(t, int64(42), stats.LogsToday)
	assert.Equal(t, int64(7), stats.ErrorCount)
	assert.Equal(t, int64(3), stats.FilesUploaded)
	assert.Len(t, stats.Timeline, 1)
}

func TestOverview_PartialFailureDegradesToZero(t *testing.T) {
	down := errors.New("no connection")
	logs := &mockLogStats{
		totalFn:  func(ctx context.Context) (int64, error) { return 0, down },
		todayFn:  func(ctx context.Context) (int64, error) { return 0, down },
		errorsFn: func(ctx context.Context) (int64, error) { return 0, down },
		timelineFn: func(ctx context.Context) ([]entity.TimelineBucket, error) {
			return nil, down
		},
	}
	files := &mockFileCounter{countFn: func(ctx context.Context) (int64, error) { return 9, nil }}

	stats := NewDashboardUsecase(logs, files).Overview(context.Background())

	assert.Zero(t, stats.TotalLogs)
	assert.Zero(t, stats.LogsToday)
	assert.Zero(t, stats.ErrorCount)
	assert.Empty(t, stats.Timeline)
	assert.Equal(t, int64(9), stats.FilesUploaded)
}
