package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call this
// for every non-nil service error.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrActivityClosed):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Activity is closed for submissions")
	case errors.Is(err, apperrors.ErrAlreadyMember):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Already a member of this group")
	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Activity has already been submitted")
	case errors.Is(err, apperrors.ErrAlreadyAnswered):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Question has already been answered")
	case errors.Is(err, apperrors.ErrInviteInactive):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Invite is no longer active")
	case errors.Is(err, apperrors.ErrInviteExpired):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Invite has expired")
	case errors.Is(err, apperrors.ErrInviteExhausted):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Invite has reached its maximum number of uses")
	case errors.Is(err, apperrors.ErrInsufficientCoins):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Insufficient coin balance")
	case errors.Is(err, apperrors.ErrInsufficientCredits):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Insufficient question credits")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrPasswordResetTokenUsed):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Password reset token has already been used")

	case errors.Is(err, apperrors.ErrInvalidPasswordResetToken):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid or expired password reset token")
	case errors.Is(err, apperrors.ErrInvalidTurnStatus):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid turn status")
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email address")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondErrorWithDetails(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request")

	case errors.Is(err, apperrors.ErrChatUpstream):
		respondError(c, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Chat completion provider failed")

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrGroupNotFound),
		errors.Is(err, apperrors.ErrInviteNotFound),
		errors.Is(err, apperrors.ErrActivityNotFound),
		errors.Is(err, apperrors.ErrQuestionNotFound),
		errors.Is(err, apperrors.ErrConversationNotFound),
		errors.Is(err, apperrors.ErrNewsNotFound),
		errors.Is(err, apperrors.ErrPlaceNotFound),
		errors.Is(err, apperrors.ErrQuickActionNotFound),
		errors.Is(err, apperrors.ErrWellnessRequestNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Conflict")

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func respondErrorWithDetails(c *gin.Context, status int, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message)
	errorDetail = errorDetail.WithDetails(details)
	c.JSON(status, dto.NewErrorResponse(errorDetail))
}
