package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
)

// AnalyticsController handles engagement statistics for group owners
type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// MyStats returns engagement statistics for the caller's groups
// @Summary Get my group statistics
// @Description Returns per group response rates and accuracy for the groups the caller owns
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsSummary} "Statistics retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/my [get]
func (c *AnalyticsController) MyStats(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	summary, err := c.analyticsService.MyStats(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, summary)
}
