package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
)

// WellnessController handles prompts, moods, centers and attention turns
type WellnessController struct {
	wellnessService services.WellnessService
}

// NewWellnessController creates a new WellnessController
func NewWellnessController(wellnessService services.WellnessService) *WellnessController {
	return &WellnessController{wellnessService: wellnessService}
}

// ListPrompts lists active wellness prompts
// @Summary List wellness prompts
// @Description Returns active prompts, optionally filtered by the screen they appear on
// @Tags wellness
// @Produce json
// @Security BearerAuth
// @Param screen query string false "Filter by screen"
// @Success 200 {object} dto.APIResponse{data=[]dto.WellnessPromptResponse} "Prompts retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/prompts [get]
func (c *WellnessController) ListPrompts(ctx *gin.Context) {
	var screen *string
	if v := ctx.Query("screen"); v != "" {
		screen = &v
	}

	prompts, err := c.wellnessService.ListPrompts(ctx, screen)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, prompts)
}

// CreatePrompt creates a wellness prompt
// @Summary Create a wellness prompt
// @Tags wellness
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateWellnessPromptRequest true "Prompt data"
// @Success 201 {object} dto.APIResponse{data=dto.WellnessPromptResponse} "Prompt created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/prompts [post]
func (c *WellnessController) CreatePrompt(ctx *gin.Context) {
	var req dto.CreateWellnessPromptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid prompt data")
		return
	}

	prompt, err := c.wellnessService.CreatePrompt(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, prompt)
}

// RecordMood records a mood response
// @Summary Record a mood
// @Description Records the caller's answer to an active wellness prompt
// @Tags wellness
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordMoodRequest true "Mood data"
// @Success 201 {object} dto.APIResponse{data=dto.MoodResponse} "Mood recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Prompt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/moods [post]
func (c *WellnessController) RecordMood(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.RecordMoodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid mood data")
		return
	}

	mood, err := c.wellnessService.RecordMood(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, mood)
}

// ListMyMoods lists the caller's mood history
// @Summary List my moods
// @Tags wellness
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Moods retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/moods/me [get]
func (c *WellnessController) ListMyMoods(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	moods, total, err := c.wellnessService.ListMyMoods(ctx, userID, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, moods, total, limit, offset)
}

// ListCenters lists active wellness centers
// @Summary List wellness centers
// @Tags wellness
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.WellnessCenterResponse} "Centers retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/centers [get]
func (c *WellnessController) ListCenters(ctx *gin.Context) {
	centers, err := c.wellnessService.ListCenters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, centers)
}

// CreateCenter creates a wellness center
// @Summary Create a wellness center
// @Tags wellness
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateWellnessCenterRequest true "Center data"
// @Success 201 {object} dto.APIResponse{data=dto.WellnessCenterResponse} "Center created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/centers [post]
func (c *WellnessController) CreateCenter(ctx *gin.Context) {
	var req dto.CreateWellnessCenterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid center data")
		return
	}

	center, err := c.wellnessService.CreateCenter(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, center)
}

// RequestTurn requests an attention turn at a center
// @Summary Request an attention turn
// @Description Creates a waiting turn for the caller at the given center
// @Tags wellness
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RequestTurnRequest true "Turn data"
// @Success 201 {object} dto.APIResponse{data=dto.TurnResponse} "Turn created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Center not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/turns [post]
func (c *WellnessController) RequestTurn(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.RequestTurnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid turn data")
		return
	}

	turn, err := c.wellnessService.RequestTurn(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, turn)
}

// ListMyTurns lists the caller's turns
// @Summary List my turns
// @Tags wellness
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.TurnResponse} "Turns retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/turns/me [get]
func (c *WellnessController) ListMyTurns(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	turns, err := c.wellnessService.ListMyTurns(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, turns)
}

// ListCenterTurns lists the turns of a center
// @Summary List center turns
// @Description Returns the turn queue of a center, optionally filtered by status
// @Tags wellness
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=[]dto.TurnResponse} "Turns retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Center not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/centers/{id}/turns [get]
func (c *WellnessController) ListCenterTurns(ctx *gin.Context) {
	centerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var status *string
	if v := ctx.Query("status"); v != "" {
		status = &v
	}

	turns, err := c.wellnessService.ListCenterTurns(ctx, centerID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, turns)
}

// UpdateTurnStatus advances a turn through its lifecycle
// @Summary Update a turn's status
// @Tags wellness
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Turn ID"
// @Param request body dto.UpdateTurnStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.TurnResponse} "Turn updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Turn not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wellness/turns/{id}/status [patch]
func (c *WellnessController) UpdateTurnStatus(ctx *gin.Context) {
	turnID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTurnStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid status data")
		return
	}

	turn, err := c.wellnessService.UpdateTurnStatus(ctx, turnID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, turn)
}
