package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

func statusFor(err error) int {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	HandleAPIError(c, err)
	return recorder.Code
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{apperrors.ErrAccountDisabled, http.StatusForbidden},
		{apperrors.ErrPermissionDenied, http.StatusForbidden},
		{apperrors.ErrValidationFailed, http.StatusBadRequest},
		{apperrors.ErrInvalidTurnStatus, http.StatusBadRequest},
		{apperrors.ErrInvalidPasswordResetToken, http.StatusBadRequest},
		{apperrors.ErrAlreadyMember, http.StatusConflict},
		{apperrors.ErrAlreadySubmitted, http.StatusConflict},
		{apperrors.ErrAlreadyAnswered, http.StatusConflict},
		{apperrors.ErrActivityClosed, http.StatusConflict},
		{apperrors.ErrInviteExpired, http.StatusConflict},
		{apperrors.ErrInviteExhausted, http.StatusConflict},
		{apperrors.ErrInsufficientCoins, http.StatusConflict},
		{apperrors.ErrInsufficientCredits, http.StatusConflict},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{apperrors.ErrChatUpstream, http.StatusBadGateway},
		{apperrors.ErrUserNotFound, http.StatusNotFound},
		{apperrors.ErrGroupNotFound, http.StatusNotFound},
		{apperrors.ErrActivityNotFound, http.StatusNotFound},
		{apperrors.ErrConversationNotFound, http.StatusNotFound},
		{apperrors.ErrNewsNotFound, http.StatusNotFound},
		{apperrors.ErrPlaceNotFound, http.StatusNotFound},
		{apperrors.ErrQuickActionNotFound, http.StatusNotFound},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusFor(tc.err), tc.err.Error())
	}
}

func TestHandleAPIErrorWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: selected option is required", apperrors.ErrValidationFailed)
	assert.Equal(t, http.StatusBadRequest, statusFor(wrapped))

	wrapped = fmt.Errorf("group lookup: %w", apperrors.ErrGroupNotFound)
	assert.Equal(t, http.StatusNotFound, statusFor(wrapped))
}
