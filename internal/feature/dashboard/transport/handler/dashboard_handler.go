// Package handler provides the HTTP handlers for the dashboard feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"logsearch_backend/internal/feature/dashboard/domain/entity"
	"logsearch_backend/internal/platform/session"
)

// DashboardUsecase defines the stats operation used by the handler.
type DashboardUsecase interface {
	Overview(ctx context.Context) entity.Stats
}

// DashboardHandler serves the landing page and the stats API.
type DashboardHandler struct {
	uc       DashboardUsecase
	sessions *session.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(uc DashboardUsecase, sessions *session.Store) *DashboardHandler {
	return &DashboardHandler{uc: uc, sessions: sessions}
}

// Page renders the dashboard with current stats and any queued flash
// messages. Backends that are down show up as zeroes rather than an error
// page.
func (h *DashboardHandler) Page(c *gin.Context) {
	stats := h.uc.Overview(c.Request.Context())

	var flashes []session.Flash
	if sess := session.Current(c); sess != nil {
		if flashes = sess.TakeFlashes(); len(flashes) > 0 {
			if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
				slog.Warn("session not saved after draining flashes", "error", err)
			}
		}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"total_logs":     stats.TotalLogs,
		"logs_today":     stats.LogsToday,
		"error_count":    stats.ErrorCount,
		"files_uploaded": stats.FilesUploaded,
		"flashes":        flashes,
	})
}

// Stats handles GET /api/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.uc.Overview(c.Request.Context()))
}
