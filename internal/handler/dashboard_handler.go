package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/response"
	"github.com/timtruong/timtruong-backend/internal/service"
)

// DashboardProvider supplies the admin dashboard metrics.
type DashboardProvider interface {
	GetDashboardData(ctx context.Context) (*service.DashboardData, error)
}

// DashboardHandler handles admin dashboard endpoints.
type DashboardHandler struct {
	dashboardService DashboardProvider
	log              zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService DashboardProvider, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		log:              log.With().Str("component", "dashboard_handler").Logger(),
	}
}

// GetDashboardData godoc
// GET /api/v1/admin/dashboard
// Returns catalog totals, requirement distribution by exam type and search statistics.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	data, err := h.dashboardService.GetDashboardData(c.Request.Context())
	if err != nil {
		failFromService(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}
