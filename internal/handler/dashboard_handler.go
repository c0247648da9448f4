package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brgy-tracker-api/internal/dto"
	"github.com/noah-isme/brgy-tracker-api/internal/middleware"
	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
	"github.com/noah-isme/brgy-tracker-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, bool, error)
}

// DashboardHandler exposes the dashboard counts as JSON.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Dashboard counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardSummary
// @Router /api/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, cacheHit, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary)
}
