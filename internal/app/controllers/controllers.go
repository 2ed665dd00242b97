package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/middleware"
)

// currentIdentity pulls the authenticated caller from the context. It writes
// a 401 response and returns false when the auth middleware did not run.
func currentIdentity(ctx *gin.Context) (uuid.UUID, models.Role, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, "", false
	}
	role, ok := middleware.CurrentRole(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, "", false
	}
	return userID, role, true
}

// parseUUIDParam parses a path parameter as a UUID, writing a 400 on failure
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
		errorDetail = errorDetail.WithDetails(name + " must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// bindError writes a 400 response for a request body that failed binding
func bindError(ctx *gin.Context, err error, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// respond writes the standard success envelope
func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

// respondPaginated wraps a list payload with pagination metadata
func respondPaginated(ctx *gin.Context, items interface{}, total int64, limit, offset int) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items: items,
			Pagination: dto.PaginationInfo{
				Limit:      limit,
				Offset:     offset,
				TotalItems: total,
			},
		},
		Timestamp: time.Now(),
	})
}
