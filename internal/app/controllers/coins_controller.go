package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
)

// CoinsController handles coin balance and ledger operations
type CoinsController struct {
	coinsService services.CoinsService
}

// NewCoinsController creates a new CoinsController
func NewCoinsController(coinsService services.CoinsService) *CoinsController {
	return &CoinsController{coinsService: coinsService}
}

// GetBalance returns the caller's coin balance
// @Summary Get my coin balance
// @Description Returns the caller's current coin balance computed from the ledger
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CoinBalanceResponse} "Balance retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coins/me [get]
func (c *CoinsController) GetBalance(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	balance, err := c.coinsService.GetBalance(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, balance)
}

// ListLedger lists the caller's ledger entries
// @Summary List my coin ledger
// @Description Returns the caller's ledger entries, newest first
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Ledger retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coins/me/ledger [get]
func (c *CoinsController) ListLedger(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	entries, total, err := c.coinsService.ListLedger(ctx, userID, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, entries, total, limit, offset)
}

// Adjust applies a manual coin adjustment
// @Summary Adjust a user's coins
// @Description Applies a manual ledger adjustment to the given user. Negative deltas may not take the balance below zero.
// @Tags coins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CoinAdjustRequest true "Adjustment"
// @Success 200 {object} dto.APIResponse{data=dto.CoinBalanceResponse} "Adjustment applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Insufficient coins"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coins/adjust [post]
func (c *CoinsController) Adjust(ctx *gin.Context) {
	var req dto.CoinAdjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid adjustment data")
		return
	}

	balance, err := c.coinsService.Adjust(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, balance)
}
