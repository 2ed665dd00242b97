package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
)

// ConfigController handles quick actions and feature flags
type ConfigController struct {
	configService services.ConfigService
}

// NewConfigController creates a new ConfigController
func NewConfigController(configService services.ConfigService) *ConfigController {
	return &ConfigController{configService: configService}
}

// ListQuickActions lists the quick actions for the caller's role
// @Summary List my quick actions
// @Description Returns the active home screen shortcuts available to the caller's role, ordered by position
// @Tags config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.QuickActionResponse} "Quick actions retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/quick-actions [get]
func (c *ConfigController) ListQuickActions(ctx *gin.Context) {
	_, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	actions, err := c.configService.ListQuickActionsForRole(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, actions)
}

// ListAllQuickActions lists every quick action
// @Summary List all quick actions
// @Description Returns every configured quick action, including inactive ones
// @Tags config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.QuickAction} "Quick actions retrieved"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/quick-actions/all [get]
func (c *ConfigController) ListAllQuickActions(ctx *gin.Context) {
	actions, err := c.configService.ListAllQuickActions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, actions)
}

// CreateQuickAction creates a quick action
// @Summary Create a quick action
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertQuickActionRequest true "Quick action data"
// @Success 201 {object} dto.APIResponse{data=models.QuickAction} "Quick action created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/quick-actions [post]
func (c *ConfigController) CreateQuickAction(ctx *gin.Context) {
	var req dto.UpsertQuickActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid quick action data")
		return
	}

	action, err := c.configService.CreateQuickAction(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, action)
}

// UpdateQuickAction replaces a quick action's definition
// @Summary Update a quick action
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quick action ID"
// @Param request body dto.UpsertQuickActionRequest true "Quick action data"
// @Success 200 {object} dto.APIResponse{data=models.QuickAction} "Quick action updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Quick action not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/quick-actions/{id} [put]
func (c *ConfigController) UpdateQuickAction(ctx *gin.Context) {
	actionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpsertQuickActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid quick action data")
		return
	}

	action, err := c.configService.UpdateQuickAction(ctx, actionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, action)
}

// DeleteQuickAction removes a quick action
// @Summary Delete a quick action
// @Tags config
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quick action ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Quick action deleted"
// @Failure 404 {object} dto.ErrorResponse "Quick action not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/quick-actions/{id} [delete]
func (c *ConfigController) DeleteQuickAction(ctx *gin.Context) {
	actionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.configService.DeleteQuickAction(ctx, actionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Quick action deleted"})
}

// ListFeatureFlags lists all feature flags
// @Summary List feature flags
// @Tags config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FeatureFlagResponse} "Flags retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/flags [get]
func (c *ConfigController) ListFeatureFlags(ctx *gin.Context) {
	flags, err := c.configService.ListFeatureFlags(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, flags)
}

// GetFeatureFlag returns one feature flag
// @Summary Get a feature flag
// @Tags config
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Success 200 {object} dto.APIResponse{data=dto.FeatureFlagResponse} "Flag retrieved"
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/flags/{key} [get]
func (c *ConfigController) GetFeatureFlag(ctx *gin.Context) {
	flag, err := c.configService.GetFeatureFlag(ctx, ctx.Param("key"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, flag)
}

// UpsertFeatureFlag creates or updates a feature flag
// @Summary Upsert a feature flag
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Param request body dto.UpsertFeatureFlagRequest true "Flag data"
// @Success 200 {object} dto.APIResponse{data=dto.FeatureFlagResponse} "Flag saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /config/flags/{key} [put]
func (c *ConfigController) UpsertFeatureFlag(ctx *gin.Context) {
	var req dto.UpsertFeatureFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid flag data")
		return
	}

	flag, err := c.configService.UpsertFeatureFlag(ctx, ctx.Param("key"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, flag)
}
