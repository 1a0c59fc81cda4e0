// Package handler provides the HTTP handlers for the health feature.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logsearch_backend/internal/platform/health"
)

// Checker probes one backing service.
type Checker interface {
	HealthCheck(ctx context.Context) health.Report
}

// checkTimeout bounds each service probe so one stuck backend cannot hang
// the endpoint.
const checkTimeout = 5 * time.Second

// HealthHandler serves the JSON health endpoint and the HTML dashboard.
type HealthHandler struct {
	checkers map[string]Checker
}

// NewHealthHandler creates a HealthHandler over named service checkers.
func NewHealthHandler(checkers map[string]Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Services  map[string]health.Report `json:"services"`
}

func (h *HealthHandler) probeAll(ctx context.Context) HealthResponse {
	services := make(map[string]health.Report, len(h.checkers))
	for name, checker := range h.checkers {
		probeCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		services[name] = checker.HealthCheck(probeCtx)
		cancel()
	}
	return HealthResponse{
		Status:    health.Overall(services),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	}
}

// Health handles GET /health. The endpoint always answers 200; the overall
// status field carries the verdict.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.probeAll(c.Request.Context()))
}

// Dashboard renders the health dashboard page.
func (h *HealthHandler) Dashboard(c *gin.Context) {
	resp := h.probeAll(c.Request.Context())
	c.HTML(http.StatusOK, "health_dashboard.html", gin.H{
		"status":   resp.Status,
		"services": resp.Services,
	})
}
